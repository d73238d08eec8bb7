package scan

// Observer 每发现一个开放端口就会收到一次通知,只在收集协程中调用
type Observer interface {
	PortOpen(host Host, port int)
}

type ObserverFunc func(host Host, port int)

func (f ObserverFunc) PortOpen(host Host, port int) {
	f(host, port)
}

type nopObserver struct{}

func (nopObserver) PortOpen(Host, int) {}
