// Package credentials is the credential manager from spec.md §4.G:
// generate, save, load, list and check per-container credential bundles
// as .env.<username> files under each container's credentials directory.
//
// Grounded on pkg/utils/string_utils.go's small crypto/string helpers,
// generalized into a full save/load cycle with the hybrid raw/JSON
// encoding spec.md §4.G fixes.
package credentials

import (
	"bufio"
	"crypto/rand"
	"encoding/json"
	"math/big"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/robertjbass/spindb/internal/paths"
	"github.com/robertjbass/spindb/internal/spinerr"
)

// UsernameRegexp matches valid credential usernames (used for the
// .env.<username> filename component).
var UsernameRegexp = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]{0,62}$`)

// ValidateUsername returns an InvalidInput error unless username is
// syntactically valid. Callers must validate before forming any path, per
// spec.md §4.G: "filename derivation fails with InvalidUsername before
// any path is formed."
func ValidateUsername(username string) error {
	if !UsernameRegexp.MatchString(username) {
		return spinerr.New(spinerr.InvalidInput, "invalid username: "+username)
	}
	return nil
}

// Bundle is a credential record. Exactly one of the password fields or
// the API-key fields is populated, matching spec.md §3's two bundle
// shapes: a password bundle carries DB_USER/DB_PASSWORD/DB_HOST/DB_PORT/
// DB_NAME/DB_URL, an API-key bundle carries API_KEY_NAME/API_KEY/API_URL.
type Bundle struct {
	Kind     string // "password" or "apikey"
	Username string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     int
	DBName     string
	DBURL      string

	APIKeyName string
	APIKey     string
	APIURL     string
}

const (
	alphanumericAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	symbolAlphabet       = alphanumericAlphabet + "!@#$%^&*()-_=+"
)

// GeneratePasswordOptions configures GeneratePassword.
type GeneratePasswordOptions struct {
	Length          int
	AlphanumericOnly bool
}

// GeneratePassword returns a cryptographically secure random password.
// Default length is 20; alphanumeric-only mode excludes symbols.
func GeneratePassword(opts GeneratePasswordOptions) (string, error) {
	length := opts.Length
	if length <= 0 {
		length = 20
	}
	alphabet := symbolAlphabet
	if opts.AlphanumericOnly {
		alphabet = alphanumericAlphabet
	}

	out := make([]byte, length)
	max := big.NewInt(int64(len(alphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", spinerr.Wrap(spinerr.IOError, "generate password", err)
		}
		out[i] = alphabet[n.Int64()]
	}
	return string(out), nil
}

// Manager persists credential bundles under each container's credentials
// directory.
type Manager struct {
	layout *paths.Layout
}

// NewManager builds a credential manager bound to the path layout.
func NewManager(layout *paths.Layout) *Manager {
	return &Manager{layout: layout}
}

// DefaultUsername returns the canonical default username for an engine's
// credential bundle: the search-engine variant uses "search_key", the
// vector-engine variant uses "api_key", everything else gets a generic
// default (spec.md §4.G).
func DefaultUsername(engineName string) string {
	switch engineName {
	case "meilisearch", "typesense":
		return "search_key"
	case "qdrant", "weaviate":
		return "api_key"
	default:
		return "default"
	}
}

// Save writes a bundle to <credentials_dir>/.env.<username> at mode 0600,
// creating the credentials directory at 0700 if absent. Username
// validation happens before any path is formed.
func (m *Manager) Save(name, engineName string, bundle Bundle) (string, error) {
	if err := ValidateUsername(bundle.Username); err != nil {
		return "", err
	}

	dir, err := m.layout.CredentialsDir(name, engineName)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", spinerr.Wrap(spinerr.IOError, "create credentials directory", err)
	}

	path := filepath.Join(dir, ".env."+bundle.Username)
	var lines []string
	if bundle.Kind == "apikey" {
		lines = []string{
			"API_KEY_NAME=" + encodeValue(bundle.APIKeyName),
			"API_KEY=" + encodeValue(bundle.APIKey),
			"API_URL=" + encodeValue(bundle.APIURL),
		}
	} else {
		lines = []string{
			"DB_USER=" + encodeValue(bundle.DBUser),
			"DB_PASSWORD=" + encodeValue(bundle.DBPassword),
			"DB_HOST=" + encodeValue(bundle.DBHost),
			"DB_PORT=" + encodeValue(strconv.Itoa(bundle.DBPort)),
			"DB_NAME=" + encodeValue(bundle.DBName),
			"DB_URL=" + encodeValue(bundle.DBURL),
		}
	}
	content := strings.Join(lines, "\n") + "\n"

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return "", spinerr.Wrap(spinerr.IOError, "write credentials file", err)
	}
	return path, nil
}

// Load reads a bundle back; returns ok=false if the file is missing, and
// a CorruptArtifact-tagged error if required keys are absent.
func (m *Manager) Load(name, engineName, username string) (Bundle, bool, error) {
	dir, err := m.layout.CredentialsDir(name, engineName)
	if err != nil {
		return Bundle{}, false, err
	}
	path := filepath.Join(dir, ".env."+username)

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return Bundle{}, false, nil
	}
	if err != nil {
		return Bundle{}, false, spinerr.Wrap(spinerr.IOError, "open credentials file", err)
	}
	defer f.Close()

	values := map[string]string{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		values[k] = decodeValue(v)
	}
	if err := scanner.Err(); err != nil {
		return Bundle{}, false, spinerr.Wrap(spinerr.IOError, "read credentials file", err)
	}

	bundle := Bundle{Username: username}
	if _, hasAPIKey := values["API_KEY"]; hasAPIKey {
		apiKeyName, ok1 := values["API_KEY_NAME"]
		apiKey, ok2 := values["API_KEY"]
		apiURL, ok3 := values["API_URL"]
		if !ok1 || !ok2 || !ok3 {
			return Bundle{}, false, spinerr.New(spinerr.CorruptArtifact, "credential bundle missing required API key fields: "+path)
		}
		bundle.Kind = "apikey"
		bundle.APIKeyName = apiKeyName
		bundle.APIKey = apiKey
		bundle.APIURL = apiURL
		return bundle, true, nil
	}

	dbUser, ok1 := values["DB_USER"]
	dbPassword, ok2 := values["DB_PASSWORD"]
	dbURL, ok3 := values["DB_URL"]
	if !ok1 || !ok2 || !ok3 {
		return Bundle{}, false, spinerr.New(spinerr.CorruptArtifact, "credential bundle missing required password fields: "+path)
	}
	bundle.Kind = "password"
	bundle.DBUser = dbUser
	bundle.DBPassword = dbPassword
	bundle.DBURL = dbURL
	bundle.DBHost = values["DB_HOST"]
	bundle.DBName = values["DB_NAME"]
	if dbPort, ok := values["DB_PORT"]; ok {
		if port, err := strconv.Atoi(dbPort); err == nil {
			bundle.DBPort = port
		}
	}
	return bundle, true, nil
}

// List scans the credentials directory for .env.* files and returns the
// usernames.
func (m *Manager) List(name, engineName string) ([]string, error) {
	dir, err := m.layout.CredentialsDir(name, engineName)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, spinerr.Wrap(spinerr.IOError, "list credentials directory", err)
	}
	var usernames []string
	for _, e := range entries {
		if username, ok := strings.CutPrefix(e.Name(), ".env."); ok {
			usernames = append(usernames, username)
		}
	}
	return usernames, nil
}

// Exists reports whether a credential bundle for username is present.
func (m *Manager) Exists(name, engineName, username string) (bool, error) {
	dir, err := m.layout.CredentialsDir(name, engineName)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(filepath.Join(dir, ".env."+username))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, spinerr.Wrap(spinerr.IOError, "stat credentials file", err)
	}
	return true, nil
}

// needsJSONEncoding reports whether v contains any character that would
// break the KEY=VALUE line format if stored raw (spec.md §4.G).
func needsJSONEncoding(v string) bool {
	return strings.ContainsAny(v, "\n\r=\\")
}

func encodeValue(v string) string {
	if !needsJSONEncoding(v) {
		return v
	}
	b, _ := json.Marshal(v)
	return string(b)
}

// decodeValue reverses encodeValue by detecting a leading quote.
func decodeValue(v string) string {
	if strings.HasPrefix(v, `"`) {
		var decoded string
		if err := json.Unmarshal([]byte(v), &decoded); err == nil {
			return decoded
		}
	}
	return v
}
