package aura

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/tailscale/hujson"
)

const (
	modeKey  = "aura_mode"
	speedKey = "aura_speed"

	configDirName  = "GHelper"
	configFileName = "config.json"
)

// written by some Windows editors in front of otherwise valid JSON
var utf8BOM = []byte("\xef\xbb\xbf")

var (
	ErrConfigNotFound  = errors.New("G-Helper config.json not found")
	ErrConfigEmpty     = errors.New("G-Helper config.json is empty")
	ErrConfigNotObject = errors.New("G-Helper config.json is not a JSON object")
)

// DefaultConfigPath returns <app-data>/GHelper/config.json
// (%AppData% on Windows, ~/.config elsewhere)
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to locate application data directory")
	}
	return filepath.Join(dir, configDirName, configFileName), nil
}

// ConfigWriter rewrites the lighting keys of G-Helper's config file and
// leaves every other key as it was
type ConfigWriter struct {
	path string
}

func NewConfigWriter(path string) *ConfigWriter {
	return &ConfigWriter{path: path}
}

func (w *ConfigWriter) Path() string {
	return w.path
}

// SetMode sets aura_mode to the mode name and, for animated modes, aura_speed
// to AnimatedSpeed. The file is never created. The new content is written to a
// temporary file and renamed over the config, so a failure leaves it as is.
func (w *ConfigWriter) SetMode(mode Mode) error {
	info, err := os.Stat(w.path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(ErrConfigNotFound, w.path)
		}
		return errors.Wrap(err, "failed to stat config")
	}

	raw, err := os.ReadFile(w.path)
	if err != nil {
		return errors.Wrap(err, "failed to read config")
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return errors.Wrap(ErrConfigEmpty, w.path)
	}

	out, err := applyMode(raw, mode)
	if err != nil {
		return errors.Wrap(err, "failed to update config")
	}

	if err := replaceFile(w.path, out, info.Mode().Perm()); err != nil {
		return errors.Wrap(err, "failed to write config")
	}
	return nil
}

func replaceFile(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// CurrentMode reads aura_mode back from the config file
func (w *ConfigWriter) CurrentMode() (Mode, error) {
	raw, err := os.ReadFile(w.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ModeNone, errors.Wrap(ErrConfigNotFound, w.path)
		}
		return ModeNone, errors.Wrap(err, "failed to read config")
	}

	v, err := hujson.Parse(bytes.TrimPrefix(raw, utf8BOM))
	if err != nil {
		return ModeNone, errors.Wrap(err, "failed to parse config")
	}
	obj, ok := v.Value.(*hujson.Object)
	if !ok {
		return ModeNone, ErrConfigNotObject
	}

	for _, m := range obj.Members {
		if memberName(m) == modeKey {
			if lit, ok := m.Value.Value.(hujson.Literal); ok && lit.Kind() == '"' {
				return Mode(lit.String()), nil
			}
		}
	}
	return ModeNone, nil
}

// applyMode returns the document with the mode keys set, standardized to
// plain JSON and indented with two spaces. Member order is preserved.
func applyMode(raw []byte, mode Mode) ([]byte, error) {
	v, err := hujson.Parse(bytes.TrimPrefix(raw, utf8BOM))
	if err != nil {
		return nil, errors.Wrap(err, "invalid JSON")
	}

	obj, ok := v.Value.(*hujson.Object)
	if !ok {
		return nil, ErrConfigNotObject
	}

	setMember(obj, modeKey, hujson.String(string(mode)))
	if !mode.IsStatic() {
		setMember(obj, speedKey, hujson.Int(AnimatedSpeed))
	}

	v.Standardize()

	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(v.Pack()), "", "  "); err != nil {
		return nil, errors.Wrap(err, "failed to format JSON")
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// setMember replaces the value of every member called name, or appends the
// member when there is none
func setMember(obj *hujson.Object, name string, value hujson.Literal) {
	found := false
	for i := range obj.Members {
		if memberName(obj.Members[i]) == name {
			obj.Members[i].Value.Value = value
			found = true
		}
	}
	if found {
		return
	}

	obj.Members = append(obj.Members, hujson.ObjectMember{
		Name:  hujson.Value{Value: hujson.String(name)},
		Value: hujson.Value{Value: value},
	})
}

func memberName(m hujson.ObjectMember) string {
	lit, ok := m.Name.Value.(hujson.Literal)
	if !ok {
		return ""
	}
	return lit.String()
}
