// Package sysinfo collects the host identity shown in the info panel.
package sysinfo

import (
	"fmt"
	"net"
	"os"
	"os/user"
	"runtime"
	"strconv"
	"strings"
	"time"

	"clock/glyph"

	"github.com/patrickmn/go-cache"
	"github.com/prometheus/procfs"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultMaxLength is the longest value shown unabridged.
	DefaultMaxLength = 16

	// TruncateExtra is how many characters past maxLength survive truncation,
	// before the trailing "...".
	TruncateExtra = 9

	defaultUser = "user"
	identityKey = "identity"
)

// Identity is one snapshot of host/OS facts. Empty fields render as the
// placeholder.
type Identity struct {
	User         string
	Host         string
	System       string
	Release      string
	Architecture string
	Machine      string
	Runtime      string
	Processor    string
	IP           string
}

// Collector gathers Identity values. Results are cached for the configured TTL
// because the info lane asks every frame.
type Collector struct {
	cache *cache.Cache
	log   *logrus.Entry

	userSteps []func() (string, error)
	hostname  func() (string, error)
	lookupIP  func(host string) ([]net.IP, error)
	processor func() (string, error)
}

// NewCollector builds a Collector. ttl <= 0 disables caching.
func NewCollector(ttl time.Duration, log *logrus.Entry) *Collector {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	c := &Collector{
		log:       log,
		userSteps: []func() (string, error){currentUser, userFromUID, userFromEnv},
		hostname:  os.Hostname,
		lookupIP:  net.LookupIP,
		processor: cpuModel,
	}
	if ttl > 0 {
		c.cache = cache.New(ttl, 2*ttl)
	}
	return c
}

// Collect returns the host identity. Failures never propagate: each field
// falls back to the next source or to an empty value.
func (c *Collector) Collect() Identity {
	if c.cache != nil {
		if v, ok := c.cache.Get(identityKey); ok {
			return v.(Identity)
		}
	}
	id := c.collect()
	if c.cache != nil {
		c.cache.SetDefault(identityKey, id)
	}
	return id
}

func (c *Collector) collect() Identity {
	release, machine := uname()
	if runtime.GOOS == "darwin" {
		if v := macOSVersion(); v != "" {
			release = v
		}
	}
	if machine == "" {
		machine = runtime.GOARCH
	}

	id := Identity{
		User:         c.userName(),
		System:       systemName(runtime.GOOS),
		Release:      release,
		Architecture: fmt.Sprintf("%dbit", strconv.IntSize),
		Machine:      machine,
		Runtime:      runtime.Version(),
	}

	host, err := c.hostname()
	if err != nil {
		c.log.WithError(err).Debug("hostname lookup failed")
	}
	id.Host = host

	if proc, err := c.processor(); err != nil {
		c.log.WithError(err).Debug("processor lookup failed")
		id.Processor = machine
	} else {
		id.Processor = proc
	}

	if host != "" {
		id.IP = c.resolveIPv4(host)
	}
	return id
}

// userName walks the fallback chain and ends with a literal default.
func (c *Collector) userName() string {
	for _, step := range c.userSteps {
		name, err := step()
		if err != nil {
			c.log.WithError(err).Debug("user lookup step failed")
			continue
		}
		if name = strings.TrimSpace(name); name != "" {
			return name
		}
	}
	return defaultUser
}

func (c *Collector) resolveIPv4(host string) string {
	ips, err := c.lookupIP(host)
	if err != nil {
		c.log.WithError(err).Debug("address lookup failed")
		return ""
	}
	for _, ip := range ips {
		if v4 := ip.To4(); v4 != nil {
			return v4.String()
		}
	}
	if len(ips) > 0 {
		return ips[0].String()
	}
	return ""
}

func currentUser() (string, error) {
	u, err := user.Current()
	if err != nil {
		return "", err
	}
	return u.Username, nil
}

func userFromUID() (string, error) {
	u, err := user.LookupId(strconv.Itoa(os.Geteuid()))
	if err != nil {
		return "", err
	}
	return u.Username, nil
}

func userFromEnv() (string, error) {
	for _, key := range []string{"USER", "USERNAME", "LOGNAME"} {
		if v := os.Getenv(key); v != "" {
			return v, nil
		}
	}
	return "", fmt.Errorf("no user variable set")
}

func cpuModel() (string, error) {
	fs, err := procfs.NewDefaultFS()
	if err != nil {
		return "", err
	}
	infos, err := fs.CPUInfo()
	if err != nil {
		return "", err
	}
	for _, info := range infos {
		if name := strings.TrimSpace(info.ModelName); name != "" {
			return name, nil
		}
	}
	return "", fmt.Errorf("cpuinfo has no model name")
}

func systemName(goos string) string {
	switch goos {
	case "linux":
		return "Linux"
	case "darwin":
		return "Darwin"
	case "windows":
		return "Windows"
	case "freebsd":
		return "FreeBSD"
	case "":
		return ""
	}
	return strings.ToUpper(goos[:1]) + goos[1:]
}

// DetectOS names the logo to draw: the override when set, otherwise the
// running OS, or "" when there is no logo for it.
func DetectOS(override string) string {
	if override = strings.TrimSpace(override); override != "" {
		return override
	}
	switch runtime.GOOS {
	case "linux":
		return "Linux"
	case "darwin":
		return "macOS"
	case "windows":
		return "Windows"
	}
	return ""
}

// Verify returns value when it fits maxLength, a truncated copy (first
// maxLength+TruncateExtra characters and "...") when it does not, and the
// placeholder when it is blank.
func Verify(value string, maxLength int) string {
	if value == "" {
		return glyph.Placeholder
	}
	runes := []rune(value)
	if len(runes) <= maxLength {
		return value
	}
	keep := maxLength + TruncateExtra
	if keep > len(runes) {
		keep = len(runes)
	}
	return string(runes[:keep]) + "..."
}
