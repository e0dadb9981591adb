// Package auth signs an account in so that the shared session can reach pro-only lessons.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/eggdl-cli/eggdl/log"
)

// ErrAuthenticationFailed is returned when the site rejects the credentials.
var ErrAuthenticationFailed = errors.New("failed to authenticate")

// Session is the part of network.Session sign-in needs.
type Session interface {
	Get(ctx context.Context, url string) (string, error)
	PostForm(ctx context.Context, url string, form url.Values) (*http.Response, error)
}

// SignIn posts the credentials to signInURL. The site answers a successful
// sign-in with a redirect; any other status means the credentials were refused.
func SignIn(ctx context.Context, session Session, signInURL, email, password string) error {
	page, err := session.Get(ctx, signInURL)
	if err != nil {
		return fmt.Errorf("load sign-in page: %w", err)
	}

	token, err := CSRFToken(page)
	if err != nil {
		return err
	}

	resp, err := session.PostForm(ctx, signInURL, url.Values{
		"user[email]":        {email},
		"user[password]":     {password},
		"authenticity_token": {token},
	})
	if err != nil {
		return err
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusFound {
		log.With(log.Fields{"account": email, "status": resp.StatusCode}).Warn("sign-in rejected")
		return ErrAuthenticationFailed
	}

	log.With(log.Fields{"account": email}).Info("signed in")
	return nil
}

// CSRFToken reads the authenticity token the sign-in form must echo back.
func CSRFToken(page string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("parse sign-in page: %w", err)
	}

	token, ok := doc.Find(`meta[name="csrf-token"]`).First().Attr("content")
	if !ok || token == "" {
		return "", fmt.Errorf("%w: no csrf token on sign-in page", ErrAuthenticationFailed)
	}

	return token, nil
}
