package content

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"hosteria-web/internal/domain"
	"hosteria-web/pkg/logger"
	"hosteria-web/pkg/validation"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type siteRepository struct {
	path string
}

// NewSiteRepository reads the site content from a YAML file. A missing file
// is not an error: the built-in defaults are served instead.
func NewSiteRepository(path string) domain.SiteRepository {
	return &siteRepository{path: path}
}

func (r *siteRepository) Load(ctx context.Context) (*domain.Site, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("load content defaults: %w", err)
	}

	if r.path != "" {
		if _, err := os.Stat(r.path); err == nil {
			if err := k.Load(file.Provider(r.path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("load content file %s: %w", r.path, err)
			}
		} else if errors.Is(err, fs.ErrNotExist) {
			logger.Log.Warn("Content file not found, using defaults", "path", r.path)
		} else {
			return nil, fmt.Errorf("stat content file %s: %w", r.path, err)
		}
	}

	var site domain.Site
	if err := k.UnmarshalWithConf("", &site, koanf.UnmarshalConf{Tag: "mapstructure"}); err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}

	for i := range site.Services {
		site.Services[i].Icon = domain.ParseServiceIcon(string(site.Services[i].Icon))
	}

	if err := validation.New().Struct(&site); err != nil {
		return nil, fmt.Errorf("invalid content: %w", err)
	}

	return &site, nil
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"name":          "Altos de Soberana",
		"tagline":       "Hostería en la Patagonia",
		"description":   "Descanso, naturaleza y hospitalidad al pie de la cordillera.",
		"contact.email": "",
		"contact.phone": "",
	}
}
