// Package oauth implements the authorization-code exchange and userinfo
// lookup for provider-backed admin sign-in.
package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/danargo/sitegate/internal/pkg/instrument"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/oauth2"
)

// Config carries the provider settings from configuration.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	AuthURL      string
	TokenURL     string
	UserInfoURL  string
	Scopes       []string
}

type Client struct {
	cfg         *oauth2.Config
	userInfoURL string
	ins         instrument.Instrumentation
}

func New(cfg Config, ins instrument.Instrumentation) *Client {
	return &Client{
		cfg: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       cfg.Scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.AuthURL,
				TokenURL: cfg.TokenURL,
			},
		},
		userInfoURL: cfg.UserInfoURL,
		ins:         ins,
	}
}

func (c *Client) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	ctx, span := c.ins.Tracer("admin.outbound.oauth").Start(ctx, "Exchange")
	defer span.End()

	token, err := c.cfg.Exchange(ctx, code)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	return token, nil
}

// FetchEmail calls the provider's userinfo endpoint with the exchanged token.
func (c *Client) FetchEmail(ctx context.Context, token *oauth2.Token) (_ string, err error) {
	ctx, span := c.ins.Tracer("admin.outbound.oauth").Start(ctx, "FetchEmail")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	resp, err := c.cfg.Client(ctx, token).Get(c.userInfoURL)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("userinfo endpoint returned %s", resp.Status)
	}

	var info struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return "", err
	}

	return info.Email, nil
}
