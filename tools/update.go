//go:build ignore

package main

import (
	"bufio"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
)

const ianaCSV = "https://www.iana.org/assignments/service-names-port-numbers/service-names-port-numbers.csv"

//用于更新已知端口列表,由scan包中的go:generate调用,工作目录为scan/
func main() {
	out := flag.String("o", "known.go", "output file")
	maxPort := flag.Int("max", 65535, "skip ports above this number")
	flag.Parse()

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Get(ianaCSV)
	if err != nil {
		log.Fatalf("下载IANA端口表失败: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Fatalf("下载IANA端口表失败: %s", resp.Status)
	}

	output, err := os.Create(*out)
	if err != nil {
		log.Fatal(err)
	}
	defer output.Close()

	w := bufio.NewWriter(output)
	fmt.Fprintf(w, "// Code generated by tools/update.go; DO NOT EDIT.\n\npackage scan\n\n")
	fmt.Fprintf(w, "// data from %s\nvar knownPorts = map[int]string{", ianaCSV)

	n, err := writePorts(w, resp.Body, *maxPort)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Fprintf(w, "\n}\n")
	if err := w.Flush(); err != nil {
		log.Fatal(err)
	}
	log.Infof("写入%d个端口到%s", n, *out)
}

// writePorts 只保留tcp记录,同一端口取第一条
func writePorts(w io.Writer, r io.Reader, maxPort int) (int, error) {
	seen := map[int]bool{}
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	for {
		// read one row from csv
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return len(seen), err
		}

		if len(record) < 3 || record[2] != "tcp" || record[0] == "" || record[1] == "" {
			continue
		}
		port, err := strconv.Atoi(record[1]) //端口区间如"6000-6063"直接跳过
		if err != nil || port > maxPort || seen[port] {
			continue
		}
		seen[port] = true
		fmt.Fprintf(w, "\n\t%d: %q,", port, record[0])
	}
	return len(seen), nil
}
