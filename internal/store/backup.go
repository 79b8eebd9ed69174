package store

import (
	"cmp"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

const BackupExt = ".backup.json"

type BackupInfo struct {
	Path       string    `json:"path"`
	Checksum   string    `json:"checksum"`
	CreatedAt  time.Time `json:"created_at"`
	SizeBytes  int64     `json:"size_bytes"`
	Namespaces int       `json:"namespaces"`
}

type backupFile struct {
	CreatedAt time.Time                  `json:"createdAt"`
	Values    map[string]json.RawMessage `json:"values"`
}

// CreateBackup writes every known namespace held by kv to outPath with a
// sha256 sidecar file.
func CreateBackup(ctx context.Context, kv KV, outPath string) (BackupInfo, error) {
	if strings.TrimSpace(outPath) == "" {
		return BackupInfo{}, fmt.Errorf("backup output path is required")
	}
	doc := backupFile{CreatedAt: time.Now().UTC(), Values: make(map[string]json.RawMessage)}
	for _, ns := range Namespaces {
		raw, ok, err := kv.Get(ctx, ns)
		if err != nil {
			return BackupInfo{}, &Error{Op: "read", Key: ns, Err: err}
		}
		if ok && json.Valid(raw) {
			doc.Values[ns] = raw
		}
	}
	body, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return BackupInfo{}, fmt.Errorf("encode backup: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return BackupInfo{}, fmt.Errorf("create backup directory: %w", err)
	}
	if err := os.WriteFile(outPath, body, 0o644); err != nil {
		return BackupInfo{}, fmt.Errorf("write backup: %w", err)
	}
	checksum := bytesSHA256(body)
	if err := os.WriteFile(outPath+".sha256", []byte(checksum+"\n"), 0o644); err != nil {
		return BackupInfo{}, fmt.Errorf("write checksum file: %w", err)
	}
	return BackupInfo{
		Path:       outPath,
		Checksum:   checksum,
		CreatedAt:  doc.CreatedAt,
		SizeBytes:  int64(len(body)),
		Namespaces: len(doc.Values),
	}, nil
}

// RestoreBackup verifies the checksum sidecar when present and writes every
// namespace in the backup back to kv. Namespaces absent from the backup are
// left untouched.
func RestoreBackup(ctx context.Context, kv KV, backupPath string) (int, error) {
	if strings.TrimSpace(backupPath) == "" {
		return 0, fmt.Errorf("backup path is required")
	}
	body, err := os.ReadFile(backupPath)
	if err != nil {
		return 0, fmt.Errorf("read backup: %w", err)
	}
	if expected, err := os.ReadFile(backupPath + ".sha256"); err == nil {
		if strings.TrimSpace(string(expected)) != bytesSHA256(body) {
			return 0, fmt.Errorf("backup checksum mismatch")
		}
	}
	var doc backupFile
	if err := json.Unmarshal(body, &doc); err != nil {
		return 0, fmt.Errorf("decode backup: %w", err)
	}
	restored := 0
	for _, ns := range Namespaces {
		raw, ok := doc.Values[ns]
		if !ok {
			continue
		}
		if err := kv.Put(ctx, ns, raw); err != nil {
			return restored, &Error{Op: "write", Key: ns, Err: err}
		}
		restored++
	}
	return restored, nil
}

func ListBackups(dir string) ([]BackupInfo, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read backup dir: %w", err)
	}
	out := make([]BackupInfo, 0)
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), BackupExt) {
			continue
		}
		full := filepath.Join(dir, f.Name())
		st, err := os.Stat(full)
		if err != nil {
			continue
		}
		checksum := ""
		if b, err := os.ReadFile(full + ".sha256"); err == nil {
			checksum = strings.TrimSpace(string(b))
		}
		out = append(out, BackupInfo{Path: full, Checksum: checksum, CreatedAt: st.ModTime(), SizeBytes: st.Size()})
	}
	slices.SortFunc(out, func(a, b BackupInfo) int {
		return cmp.Compare(b.CreatedAt.UnixNano(), a.CreatedAt.UnixNano())
	})
	return out, nil
}

func bytesSHA256(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
