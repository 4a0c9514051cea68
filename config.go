// Reader configuration.
package fastx

// Default configuration values.
const (
	defaultReadBuffer = 64 * 1024
	minReadBuffer     = 16
)

// Config holds reader options. The zero value is ready to use.
type Config struct {
	ReadBuffer int // bufio size for the raw and decompressed streams (default 64KB)
}

// withDefaults fills unset fields.
func (c Config) withDefaults() Config {
	if c.ReadBuffer < minReadBuffer {
		c.ReadBuffer = defaultReadBuffer
	}
	return c
}
