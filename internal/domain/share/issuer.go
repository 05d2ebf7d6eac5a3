package share

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sellerconsulting/bitacora/internal/domain/access"
	"github.com/sellerconsulting/bitacora/internal/domain/project"
)

// ProjectDirectory resolves project names to catalog entries.
type ProjectDirectory interface {
	GetByName(ctx context.Context, name string) (*project.Project, error)
}

// TokenWriter persists issued grants.
type TokenWriter interface {
	Insert(ctx context.Context, grant *access.Grant) error
}

// Config controls how client links are built and whether they expire.
type Config struct {
	// BaseURL is the internal dashboard origin, e.g. https://bitacora.example.com.
	BaseURL string
	// InternalSegment and ClientSegment describe the host substitution that
	// turns the internal origin into the client one.
	InternalSegment string
	ClientSegment   string
	// TokenTTL bounds the life of issued grants. Zero means the grant never
	// expires, matching the behavior clients were onboarded with.
	TokenTTL time.Duration
}

// Issuer mints client tokens and builds shareable client-mode URLs.
type Issuer struct {
	tokens   TokenWriter
	projects ProjectDirectory
	cfg      Config
	logger   *slog.Logger
	now      func() time.Time
}

// NewIssuer creates a share link issuer.
func NewIssuer(tokens TokenWriter, projects ProjectDirectory, cfg Config, logger *slog.Logger) *Issuer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Issuer{tokens: tokens, projects: projects, cfg: cfg, logger: logger, now: time.Now}
}

// Issue creates a new active grant for a project and returns the client URL
// carrying the token. The client display name is taken from the catalog; a
// project missing from it still gets a link, with an empty client name.
func (i *Issuer) Issue(ctx context.Context, projectName string) (string, error) {
	if strings.TrimSpace(projectName) == "" {
		return "", ErrInvalidInput
	}

	clientName := ""
	if proj, err := i.projects.GetByName(ctx, projectName); err == nil {
		clientName = proj.ClientName
	}

	now := i.now()
	grant := &access.Grant{
		Token:       uuid.NewString(),
		ProjectName: projectName,
		ClientName:  clientName,
		Active:      true,
		CreatedAt:   now,
	}
	if i.cfg.TokenTTL > 0 {
		expires := now.Add(i.cfg.TokenTTL)
		grant.ExpiresAt = &expires
	}

	if err := i.tokens.Insert(ctx, grant); err != nil {
		return "", fmt.Errorf("%w: %v", ErrIssueFailed, err)
	}

	link, err := i.clientURL(grant.Token)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrIssueFailed, err)
	}

	i.logger.Info("share link issued", "project", projectName,
		"expires", grant.ExpiresAt != nil)
	return link, nil
}

func (i *Issuer) clientURL(token string) (string, error) {
	base := i.cfg.BaseURL
	if i.cfg.InternalSegment != "" && i.cfg.ClientSegment != "" {
		base = strings.Replace(base, i.cfg.InternalSegment, i.cfg.ClientSegment, 1)
	}
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parsing base url: %w", err)
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
