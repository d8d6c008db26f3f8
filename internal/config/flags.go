package config

import (
	"errors"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// NetAddress holds structured network address data for host and port.
// It implements the pflag.Value interface and, when bound to a string field,
// writes the canonical form back to it on every Set.
type NetAddress struct {
	Host string
	Port int

	dst *string
}

// BindFlags registers every configuration flag on fs and returns the config
// the parsed values are written into. The result is only meaningful after
// fs has been parsed (cobra does this before RunE).
//
// Flags:
//
//	-c/--config          JSON or YAML config file path
//	--log-level          log level (debug, info, warn, error)
//	--issuer-url         identity provider realm URL
//	--client-id          identity provider client id
//	--redirect-url       post-login redirect URL
//	--min-validity       minimum token validity before refresh (e.g. "30s")
//	-b/--base-url        back-office REST root
//	--request-timeout    REST request timeout (e.g. "30s")
//	--upload-timeout     long-running request timeout (e.g. "2m")
//	--user-cache-ttl     user-directory cache lifetime
//	--ws-endpoint        realtime websocket endpoint
//	--ws-topic           realtime notification topic
//	--reconnect-delay    first reconnect delay
//	--reconnect-factor   reconnect delay multiplier
//	--reconnect-attempts reconnect attempts before giving up
//	--search-debounce    search quiet window
//	--search-min-length  shortest dispatched query
//	-d/--dsn             sqlite DSN of the credential cache
//	--storage-key        passphrase sealing the cached tokens
//	-a/--status-address  local status endpoint address in format [host]:[port]
//	--status-timeout     local status request timeout
func BindFlags(fs *pflag.FlagSet) *StructuredConfig {
	cfg := &StructuredConfig{}

	fs.StringVarP(&cfg.FilePath, "config", "c", "", "JSON or YAML config file path")
	fs.StringVar(&cfg.App.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")

	fs.StringVar(&cfg.Auth.IssuerURL, "issuer-url", "", "Identity provider realm URL")
	fs.StringVar(&cfg.Auth.ClientID, "client-id", "", "Identity provider client id")
	fs.StringVar(&cfg.Auth.RedirectURL, "redirect-url", "", "Post-login redirect URL")
	fs.DurationVar(&cfg.Auth.MinValidity, "min-validity", 0, "Minimum token validity before refresh (e.g., 30s)")

	fs.StringVarP(&cfg.Adapter.BaseURL, "base-url", "b", "", "Back-office REST root")
	fs.DurationVar(&cfg.Adapter.RequestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.DurationVar(&cfg.Adapter.UploadTimeout, "upload-timeout", 0, "Long-running request timeout (e.g., 2m)")
	fs.DurationVar(&cfg.Adapter.UserCacheTTL, "user-cache-ttl", 0, "User directory cache lifetime")

	fs.StringVar(&cfg.Realtime.Endpoint, "ws-endpoint", "", "Realtime websocket endpoint")
	fs.StringVar(&cfg.Realtime.Topic, "ws-topic", "", "Realtime notification topic")
	fs.DurationVar(&cfg.Realtime.BaseDelay, "reconnect-delay", 0, "First reconnect delay")
	fs.Float64Var(&cfg.Realtime.Factor, "reconnect-factor", 0, "Reconnect delay multiplier")
	fs.IntVar(&cfg.Realtime.MaxAttempts, "reconnect-attempts", 0, "Reconnect attempts before giving up")

	fs.DurationVar(&cfg.Search.Debounce, "search-debounce", 0, "Search quiet window")
	fs.IntVar(&cfg.Search.MinLength, "search-min-length", 0, "Shortest dispatched search query")

	fs.StringVarP(&cfg.Storage.DB.DSN, "dsn", "d", "", "Credential cache sqlite DSN")
	fs.StringVar(&cfg.Storage.Key, "storage-key", "", "Passphrase sealing the cached tokens")

	fs.VarP(&NetAddress{dst: &cfg.Status.Address}, "status-address", "a", "Status endpoint address host:port")
	fs.DurationVar(&cfg.Status.RequestTimeout, "status-timeout", 0, "Status request timeout")

	return cfg
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Type implements pflag.Value.
func (a *NetAddress) Type() string {
	return "host:port"
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is
// "localhost" or empty, and returns an error if the format or values are
// invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number is an integer in range 1-65535")
	}

	if host != "localhost" && host != "" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	if a.dst != nil {
		*a.dst = a.String()
	}
	return nil
}
