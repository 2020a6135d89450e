package storage

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	applog "github.com/hannesa2/AudioRecorder/internal/log"
)

// Root identifies which storage area a directory was resolved from.
type Root int

const (
	RootPublic Root = iota + 1
	RootPrivate
	RootFallback
)

func (r Root) String() string {
	switch r {
	case RootPublic:
		return "public"
	case RootPrivate:
		return "private"
	case RootFallback:
		return "fallback"
	}
	return "unknown"
}

// DirFunc locates a storage directory. It returns an error when the
// storage area is not available (unmounted, no home directory, ...).
type DirFunc func() (string, error)

// StaticDir returns a DirFunc for a fixed path. An empty path is reported
// as unavailable.
func StaticDir(path string) DirFunc {
	return func() (string, error) {
		if path == "" {
			return "", errors.New("no directory configured")
		}
		return path, nil
	}
}

// Location is a resolved recordings directory.
type Location struct {
	Dir  string
	Root Root
}

// Resolver picks the recordings directory from the public and private
// storage areas, falling back to a fixed path when neither is usable.
type Resolver struct {
	Public   DirFunc
	Private  DirFunc
	Fallback string

	logger zerolog.Logger
}

func NewResolver(public, private DirFunc, fallback string) *Resolver {
	return &Resolver{
		Public:   public,
		Private:  private,
		Fallback: fallback,
		logger:   applog.WithComponent("storage"),
	}
}

// Resolve returns the first usable directory in preference order: public,
// private, fallback when preferPublic is set; private, public, fallback
// otherwise. It always returns a non-empty directory; the fallback is
// returned even if it cannot be created.
func (r *Resolver) Resolve(preferPublic bool) Location {
	order := []Root{RootPrivate, RootPublic}
	if preferPublic {
		order = []Root{RootPublic, RootPrivate}
	}

	for _, root := range order {
		dir, err := r.ensure(root)
		if err == nil {
			return Location{Dir: dir, Root: root}
		}
		r.logger.Warn().Err(err).Str(applog.FieldRoot, root.String()).Msg("storage directory unavailable")
	}

	if err := os.MkdirAll(r.Fallback, 0o755); err != nil {
		r.logger.Error().Err(err).Str(applog.FieldDir, r.Fallback).Msg("cannot create fallback directory")
	}
	r.logger.Warn().Str(applog.FieldDir, r.Fallback).Msg("using hardcoded fallback recordings directory")
	return Location{Dir: r.Fallback, Root: RootFallback}
}

// PublicDir returns the public recordings directory if it exists. Unlike
// Resolve it never creates anything.
func (r *Resolver) PublicDir() (string, error) { return r.locate(RootPublic) }

// PrivateDir returns the private recordings directory if it exists.
func (r *Resolver) PrivateDir() (string, error) { return r.locate(RootPrivate) }

// ensure creates the root's directory if needed and checks it.
func (r *Resolver) ensure(root Root) (string, error) {
	dir, err := r.path(root)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%s storage: %w", root, err)
	}
	return r.check(root, dir)
}

func (r *Resolver) locate(root Root) (string, error) {
	dir, err := r.path(root)
	if err != nil {
		return "", err
	}
	return r.check(root, dir)
}

func (r *Resolver) path(root Root) (string, error) {
	fn := r.Private
	if root == RootPublic {
		fn = r.Public
	}
	if fn == nil {
		return "", fmt.Errorf("%s storage not configured", root)
	}
	dir, err := fn()
	if err != nil {
		return "", fmt.Errorf("%s storage: %w", root, err)
	}
	if dir == "" {
		return "", fmt.Errorf("%s storage: empty directory", root)
	}
	return dir, nil
}

func (r *Resolver) check(root Root, dir string) (string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("%s storage: %w", root, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s storage: %s is not a directory", root, dir)
	}
	return dir, nil
}
