// Package seed loads the user directory, application catalog and marketing
// copy from YAML. Embedded defaults ship with the binary; a file path
// replaces them.
package seed

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"github.com/gnanalytica/website/internal/core/domain"
)

var (
	//go:embed catalog.yaml
	defaultCatalog []byte

	//go:embed site.yaml
	defaultSite []byte
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type applicationRecord struct {
	ID          string `yaml:"id" validate:"required"`
	Name        string `yaml:"name" validate:"required"`
	Description string `yaml:"description"`
	URL         string `yaml:"url" validate:"omitempty,url"`
	Status      string `yaml:"status" validate:"required,oneof=active beta coming-soon"`
}

type userRecord struct {
	ID           string   `yaml:"id" validate:"required"`
	Name         string   `yaml:"name" validate:"required"`
	Email        string   `yaml:"email" validate:"required,email"`
	Password     string   `yaml:"password" validate:"required_without=PasswordHash"`
	PasswordHash string   `yaml:"password_hash"`
	Role         string   `yaml:"role" validate:"required,oneof=admin client premium enterprise"`
	Applications []string `yaml:"applications"`
}

type catalogFile struct {
	Applications []applicationRecord `yaml:"applications" validate:"required,min=1,dive"`
	Users        []userRecord        `yaml:"users" validate:"dive"`
}

// Directory is the parsed catalog file.
type Directory struct {
	Users   []*domain.User
	Catalog domain.Catalog
	// Unknown lists, per user email, grant ids that match no catalog entry.
	// They are kept on the user and skipped when the portal renders.
	Unknown map[string][]string
	// Demo holds the accounts seeded with a plaintext password, in file order.
	Demo []DemoAccount
}

// DemoAccount is a seeded login shown on the sign-in page.
type DemoAccount struct {
	Name     string
	Email    string
	Password string
}

// LoadCatalog reads the catalog from path, or the embedded default when path
// is empty. Plaintext passwords are hashed with the given bcrypt cost.
func LoadCatalog(path string, cost int) (*Directory, error) {
	raw, err := readOrDefault(path, defaultCatalog)
	if err != nil {
		return nil, err
	}
	return ParseCatalog(raw, cost)
}

// ParseCatalog decodes and validates a catalog document.
func ParseCatalog(raw []byte, cost int) (*Directory, error) {
	var file catalogFile
	if err := decodeStrict(raw, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCatalog, err)
	}
	if err := validate.Struct(file); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCatalog, err)
	}

	apps := make([]domain.Application, 0, len(file.Applications))
	for _, a := range file.Applications {
		apps = append(apps, domain.Application{
			ID:          a.ID,
			Name:        a.Name,
			Description: a.Description,
			URL:         a.URL,
			Status:      domain.ApplicationStatus(a.Status),
		})
	}
	catalog, err := domain.NewCatalog(apps)
	if err != nil {
		return nil, err
	}

	dir := &Directory{
		Users:   make([]*domain.User, 0, len(file.Users)),
		Catalog: catalog,
		Unknown: make(map[string][]string),
	}
	seenEmail := make(map[string]struct{}, len(file.Users))
	seenID := make(map[string]struct{}, len(file.Users))
	for _, u := range file.Users {
		if _, dup := seenEmail[u.Email]; dup {
			return nil, fmt.Errorf("%w: duplicate user email %q", domain.ErrInvalidCatalog, u.Email)
		}
		if _, dup := seenID[u.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate user id %q", domain.ErrInvalidCatalog, u.ID)
		}
		seenEmail[u.Email] = struct{}{}
		seenID[u.ID] = struct{}{}

		hash, err := passwordHash(u, cost)
		if err != nil {
			return nil, fmt.Errorf("%w: user %q: %v", domain.ErrInvalidCatalog, u.Email, err)
		}
		for _, id := range u.Applications {
			if _, ok := catalog.Lookup(id); !ok {
				dir.Unknown[u.Email] = append(dir.Unknown[u.Email], id)
			}
		}
		if u.Password != "" {
			dir.Demo = append(dir.Demo, DemoAccount{Name: u.Name, Email: u.Email, Password: u.Password})
		}
		dir.Users = append(dir.Users, &domain.User{
			ID:           u.ID,
			Name:         u.Name,
			Email:        u.Email,
			PasswordHash: hash,
			Role:         domain.Role(u.Role),
			Applications: slices.Clone(u.Applications),
		})
	}
	return dir, nil
}

func passwordHash(u userRecord, cost int) (string, error) {
	if u.PasswordHash != "" {
		if _, err := bcrypt.Cost([]byte(u.PasswordHash)); err != nil {
			return "", fmt.Errorf("password_hash: %w", err)
		}
		return u.PasswordHash, nil
	}
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// LoadSite reads the marketing copy from path, or the embedded default when
// path is empty.
func LoadSite(path string) (domain.SiteContent, error) {
	raw, err := readOrDefault(path, defaultSite)
	if err != nil {
		return domain.SiteContent{}, err
	}
	return ParseSite(raw)
}

// ParseSite decodes and validates a site content document.
func ParseSite(raw []byte) (domain.SiteContent, error) {
	var content domain.SiteContent
	if err := decodeStrict(raw, &content); err != nil {
		return domain.SiteContent{}, fmt.Errorf("%w: %v", domain.ErrInvalidContent, err)
	}
	if err := checkSite(content); err != nil {
		return domain.SiteContent{}, fmt.Errorf("%w: %v", domain.ErrInvalidContent, err)
	}
	return content, nil
}

func checkSite(c domain.SiteContent) error {
	if c.Title == "" {
		return errors.New("title is required")
	}
	if c.Hero.Headline == "" {
		return errors.New("hero headline is required")
	}
	if err := validate.Var(c.Footer.Email, "required,email"); err != nil {
		return fmt.Errorf("footer email: %w", err)
	}
	for _, s := range c.Services {
		if !slices.Contains(c.ServiceCategories, s.Category) {
			return fmt.Errorf("service %q has unknown category %q", s.Name, s.Category)
		}
	}
	tabs := make(map[string]struct{}, len(c.About))
	for _, tab := range c.About {
		if tab.ID == "" {
			return fmt.Errorf("about tab %q has no id", tab.Label)
		}
		if _, dup := tabs[tab.ID]; dup {
			return fmt.Errorf("duplicate about tab %q", tab.ID)
		}
		tabs[tab.ID] = struct{}{}
	}
	return nil
}

func readOrDefault(path string, fallback []byte) ([]byte, error) {
	if path == "" {
		return fallback, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return raw, nil
}

func decodeStrict(raw []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty document")
		}
		return err
	}
	return nil
}
