package scan

//用于端口扫描,由生产者写入jobChan,worker消费
type portJob struct {
	host Host
	port int
}
