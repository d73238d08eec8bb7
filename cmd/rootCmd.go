package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"portlisten/scan"
)

//默认值
var verbose bool                      //日志级别
var timeoutMS int = 1000              //连接超时
var parallelism = scan.DefaultWorkers //并发数量,1为顺序扫描
var noSpinner bool                    //关闭进度动画
var versionRequested bool             //打印版本
var version = "development version"

//初始话命令

func init() {
	//带P的表示同时可接收缩写选项,P代表可以设置短指令
	rootCmd.PersistentFlags().BoolVarP(&versionRequested, "version", "", versionRequested, "Output version information and exit")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", verbose, "Enable verbose logging")
	rootCmd.PersistentFlags().IntVarP(&timeoutMS, "timeout-ms", "t", timeoutMS, "Per-port connect timeout in MS")
	rootCmd.PersistentFlags().IntVarP(&parallelism, "workers", "w", parallelism, "Parallel routines to scan on")
	rootCmd.PersistentFlags().BoolVarP(&noSpinner, "no-spinner", "", noSpinner, "Disable the progress spinner")
}

var rootCmd = &cobra.Command{
	Use:          "portlisten <host> <startPort> <endPort>",
	Short:        "scan a range of TCP ports on a host",
	Example:      "portlisten localhost 1 100",
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) { //主要的执行函数
		if versionRequested {
			fmt.Println(version)
			return
		}
		if verbose {
			log.SetLevel(log.DebugLevel) //设置日志级别
		}

		//参数不合法直接退出,不会启动扫描
		host, ports, err := parseArgs(args)
		if err != nil {
			fmt.Println(err)
			fmt.Println(usage)
			os.Exit(1)
		}
		if timeoutMS <= 0 {
			fmt.Printf("%v: timeout must be positive, got %d\n", ErrInvalidInput, timeoutMS)
			os.Exit(1)
		}

		//设置一个主动取消的机制
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		go func() {
			<-c //阻塞直到有信号
			log.Warn("退出...")
			cancel()
		}()

		sp := newSpinner(os.Stdout, !noSpinner && isTerminal(os.Stdout), verbose)
		scanner := scan.NewTCPScanner(time.Duration(timeoutMS)*time.Millisecond, parallelism, sp)

		sp.Start()
		result, err := scanner.Scan(ctx, host, ports.Start, ports.End)
		sp.Stop()

		fmt.Println(result.String())
		if verbose {
			fmt.Print(result.Summary())
		}
		if err != nil {
			log.Errorf("扫描未完成: %v", err)
			os.Exit(1)
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
