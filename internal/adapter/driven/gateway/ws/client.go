package ws

// Client is one registered transport connection as the hub sees it.
type Client interface {
	Key() string
	Emit(event string, payload any) error
	Close() error
}
