package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"ledger/internal/core"
	"ledger/internal/log"
)

// FileStore keeps the whole ledger in one flat file. The codec follows the
// file extension.
type FileStore struct {
	path   string
	codec  Codec
	logger *log.Logger
}

func NewFileStore(path string, logger *log.Logger) (*FileStore, error) {
	codec, err := CodecForPath(path)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &FileStore{
		path:   path,
		codec:  codec,
		logger: logger.WithComponent(log.ComponentStorage),
	}, nil
}

func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Format() Format { return s.codec.Format() }

// Load reads the file. A missing file is replaced by an empty document. An
// undecodable file, or one bad record, yields an empty ledger and a warning.
func (s *FileStore) Load(ctx context.Context) ([]core.Transaction, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		if werr := s.writePlaceholder(); werr != nil {
			s.logger.WarnContext(ctx, "Could not create ledger file",
				log.FieldPath, s.path, log.FieldError, werr)
		} else {
			s.logger.InfoContext(ctx, "Created empty ledger file",
				log.FieldPath, s.path, log.FieldFormat, s.codec.Format())
		}
		return []core.Transaction{}, nil
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to read ledger file",
			log.FieldPath, s.path, log.FieldError, err)
		return nil, fmt.Errorf("%w: read %s: %v", core.ErrIO, s.path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return []core.Transaction{}, nil
	}

	txs, err := s.codec.Decode(bytes.NewReader(data))
	if err != nil {
		s.logger.WarnContext(ctx, "Ledger file is corrupt, starting empty",
			log.FieldPath, s.path, log.FieldFormat, s.codec.Format(), log.FieldError, err)
		return []core.Transaction{}, nil
	}

	s.logger.DebugContext(ctx, "Ledger loaded",
		log.FieldPath, s.path, log.FieldCount, len(txs))
	return txs, nil
}

// Save overwrites the file with the whole collection.
func (s *FileStore) Save(ctx context.Context, txs []core.Transaction) error {
	var buf bytes.Buffer
	if err := s.codec.Encode(&buf, txs); err != nil {
		return fmt.Errorf("%w: encode %s: %v", core.ErrIO, s.path, err)
	}
	if err := s.write(buf.Bytes()); err != nil {
		s.logger.ErrorContext(ctx, "Failed to save ledger",
			log.FieldPath, s.path, log.FieldError, err)
		return fmt.Errorf("%w: write %s: %v", core.ErrIO, s.path, err)
	}
	s.logger.InfoContext(ctx, "Ledger saved",
		log.FieldPath, s.path, log.FieldCount, len(txs))
	return nil
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) writePlaceholder() error {
	return s.write(s.codec.Placeholder())
}

func (s *FileStore) write(data []byte) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(s.path, data, 0o644)
}

// Load reads the ledger file at path.
func Load(path string) ([]core.Transaction, error) {
	store, err := NewFileStore(path, nil)
	if err != nil {
		return nil, err
	}
	return store.Load(context.Background())
}

// Save writes txs to the ledger file at path.
func Save(path string, txs []core.Transaction) error {
	store, err := NewFileStore(path, nil)
	if err != nil {
		return err
	}
	return store.Save(context.Background(), txs)
}
