package config

import (
	"os"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// AnnotationTableExtension is a user-supplied mapping of additional
// annotation names to a display label, loaded from the YAML file
// named by KeyAnnotationTableFile. It supplements, rather than
// replaces, the built-in annotation name table — a front end can use
// it to recognize vendor-specific marker names without a code change.
type AnnotationTableExtension struct {
	Names map[string]string `yaml:"names"`
}

// LoadAnnotationTableExtension reads and parses the YAML file at
// path. A missing file is not an error — it yields a nil extension,
// since the feature is opt-in.
func LoadAnnotationTableExtension(path string) (*AnnotationTableExtension, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var ext AnnotationTableExtension
	if err := yaml.Unmarshal(data, &ext); err != nil {
		return nil, err
	}
	return &ext, nil
}

// Watch watches path for writes and invokes onChange with the
// freshly reloaded extension each time the file is rewritten. It
// blocks until stop is closed or the watcher otherwise fails; callers
// typically run it in its own goroutine.
func Watch(path string, logger *zap.Logger, onChange func(*AnnotationTableExtension), stop <-chan struct{}) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return err
	}

	for {
		select {
		case <-stop:
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			ext, err := LoadAnnotationTableExtension(path)
			if err != nil {
				if logger != nil {
					logger.Warn("config: failed to reload annotation table", zap.String("path", path), zap.Error(err))
				}
				continue
			}
			onChange(ext)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if logger != nil {
				logger.Warn("config: watcher error", zap.Error(err))
			}
		}
	}
}
