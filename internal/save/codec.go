// Package save persists game state to slot files. A save file is the JSON
// payload compressed with zlib, XORed against a repeating key and
// base64-encoded. The XOR pass is obfuscation against casual editing, not
// encryption.
package save

import (
	"bytes"
	"compress/zlib"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"textquest/internal/game"
)

const (
	gameVersion    = "1.0.0"
	fileExtension  = ".save"
	obfuscationKey = "textquest_save_key_2024"
)

var (
	ErrNotFound        = errors.New("save file not found")
	ErrCorrupt         = errors.New("save file corrupted")
	ErrVersionMismatch = errors.New("save file version mismatch")
)

// Metadata describes a save slot. Checksum covers the whole payload,
// computed while this field is still empty.
type Metadata struct {
	SaveName    string `json:"save_name"`
	PlayerName  string `json:"player_name"`
	Level       int    `json:"level"`
	Location    string `json:"location"`
	PlayTime    int    `json:"play_time"`
	SaveDate    string `json:"save_date"`
	GameVersion string `json:"game_version"`
	Checksum    string `json:"checksum,omitempty"`
}

type payload struct {
	GameState *game.GameState `json:"game_state"`
	Metadata  Metadata        `json:"save_metadata"`
}

// SaveInfo is one row of a directory listing. Err is set for files that
// failed to decode; the rest of the listing is unaffected.
type SaveInfo struct {
	SaveName     string
	Path         string
	Metadata     *Metadata
	FileSize     int64
	LastModified time.Time
	Err          error
}

// Codec reads and writes save slots under a single directory. The clock is
// injected so timestamps are testable.
type Codec struct {
	dir     string
	version string
	key     []byte
	now     func() time.Time
}

func NewCodec(dir string, now func() time.Time) (*Codec, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create save directory: %w", err)
	}
	return &Codec{
		dir:     dir,
		version: gameVersion,
		key:     []byte(obfuscationKey),
		now:     now,
	}, nil
}

// Save writes state into the named slot. An empty name gets a timestamped
// one. Returns the stored metadata.
func (c *Codec) Save(state *game.GameState, name string) (*Metadata, error) {
	if name == "" {
		name = "save_" + c.now().Format("20060102_150405")
	}

	p := payload{
		GameState: state,
		Metadata: Metadata{
			SaveName:    name,
			PlayerName:  state.PlayerName,
			Level:       state.Level,
			Location:    state.CurrentLocation,
			PlayTime:    state.PlayTime,
			SaveDate:    c.now().Format(time.RFC3339),
			GameVersion: c.version,
		},
	}

	unsigned, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode save payload: %w", err)
	}
	p.Metadata.Checksum = checksum(unsigned)

	signed, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode save payload: %w", err)
	}

	encoded, err := c.encode(signed)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(c.path(name), []byte(encoded), 0o644); err != nil {
		return nil, fmt.Errorf("write save file: %w", err)
	}

	meta := p.Metadata
	return &meta, nil
}

// Load reads a slot, verifies its checksum and version, and returns the
// decoded state.
func (c *Codec) Load(name string) (*game.GameState, *Metadata, error) {
	raw, err := os.ReadFile(c.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read save file: %w", err)
	}

	p, err := c.decodePayload(raw)
	if err != nil {
		return nil, nil, err
	}

	expected := p.Metadata.Checksum
	p.Metadata.Checksum = ""
	unsigned, err := json.Marshal(p)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if checksum(unsigned) != expected {
		return nil, nil, fmt.Errorf("%w: checksum mismatch", ErrCorrupt)
	}
	p.Metadata.Checksum = expected

	if p.Metadata.GameVersion != c.version {
		return nil, nil, fmt.Errorf("%w: save is %s, game is %s",
			ErrVersionMismatch, p.Metadata.GameVersion, c.version)
	}

	meta := p.Metadata
	return p.GameState, &meta, nil
}

// List scans the save directory, newest first. Files that fail to decode
// are listed with their error instead of aborting the scan.
func (c *Codec) List() ([]SaveInfo, error) {
	entries, err := os.ReadDir(c.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list save directory: %w", err)
	}

	var saves []SaveInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), fileExtension) {
			continue
		}

		info := SaveInfo{
			SaveName: strings.TrimSuffix(entry.Name(), fileExtension),
			Path:     filepath.Join(c.dir, entry.Name()),
		}
		if fi, err := entry.Info(); err == nil {
			info.FileSize = fi.Size()
			info.LastModified = fi.ModTime()
		}

		raw, err := os.ReadFile(info.Path)
		if err != nil {
			info.Err = err
			saves = append(saves, info)
			continue
		}
		p, err := c.decodePayload(raw)
		if err != nil {
			info.Err = err
			saves = append(saves, info)
			continue
		}
		meta := p.Metadata
		info.Metadata = &meta
		saves = append(saves, info)
	}

	sort.Slice(saves, func(i, j int) bool {
		return saves[i].LastModified.After(saves[j].LastModified)
	})
	return saves, nil
}

// Delete removes a slot.
func (c *Codec) Delete(name string) error {
	err := os.Remove(c.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return err
}

// Export copies a slot file to an external path.
func (c *Codec) Export(name, destPath string) error {
	return copyFile(c.path(name), destPath)
}

// Import validates an external save file and copies it in under a fresh
// name, which it returns.
func (c *Codec) Import(srcPath string) (string, error) {
	raw, err := os.ReadFile(srcPath)
	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("%w: %q", ErrNotFound, srcPath)
	}
	if err != nil {
		return "", fmt.Errorf("read import file: %w", err)
	}

	p, err := c.decodePayload(raw)
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("imported_%s_%s", p.Metadata.PlayerName, c.now().Format("20060102_150405"))
	if err := os.WriteFile(c.path(name), raw, 0o644); err != nil {
		return "", fmt.Errorf("write imported save: %w", err)
	}
	return name, nil
}

// Backup copies a slot to a timestamped sibling file and returns the
// backup's slot name.
func (c *Codec) Backup(name string) (string, error) {
	backupName := fmt.Sprintf("%s_backup_%s", name, c.now().Format("20060102_150405"))
	if err := copyFile(c.path(name), c.path(backupName)); err != nil {
		return "", err
	}
	return backupName, nil
}

func (c *Codec) path(name string) string {
	return filepath.Join(c.dir, name+fileExtension)
}

func (c *Codec) decodePayload(raw []byte) (*payload, error) {
	decoded, err := c.decode(string(raw))
	if err != nil {
		return nil, err
	}
	var p payload
	if err := json.Unmarshal(decoded, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return &p, nil
}

func (c *Codec) encode(data []byte) (string, error) {
	var compressed bytes.Buffer
	zw := zlib.NewWriter(&compressed)
	if _, err := zw.Write(data); err != nil {
		return "", fmt.Errorf("compress save payload: %w", err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("compress save payload: %w", err)
	}
	return base64.StdEncoding.EncodeToString(c.xor(compressed.Bytes())), nil
}

func (c *Codec) decode(data string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	zr, err := zlib.NewReader(bytes.NewReader(c.xor(raw)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	defer zr.Close()

	decoded, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return decoded, nil
}

// xor is its own inverse; the same pass obfuscates and deobfuscates.
func (c *Codec) xor(data []byte) []byte {
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = b ^ c.key[i%len(c.key)]
	}
	return out
}

func checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func copyFile(src, dst string) error {
	raw, err := os.ReadFile(src)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %q", ErrNotFound, src)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(dst, raw, 0o644)
}
