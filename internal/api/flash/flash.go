// Package flash carries one-shot user messages across a redirect in a cookie.
package flash

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const cookieName = "flash"

type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
)

// Message is a flash shown once on the next rendered page.
type Message struct {
	Kind Kind
	Text string
}

// Set stores a message for the next request.
func Set(c echo.Context, kind Kind, text string) {
	raw := string(kind) + "|" + text
	c.SetCookie(&http.Cookie{
		Name:     cookieName,
		Value:    base64.RawURLEncoding.EncodeToString([]byte(raw)),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Pop returns the pending message, if any, and clears it.
func Pop(c echo.Context) *Message {
	ck, err := c.Cookie(cookieName)
	if err != nil || ck.Value == "" {
		return nil
	}
	c.SetCookie(&http.Cookie{Name: cookieName, Path: "/", MaxAge: -1, HttpOnly: true})

	raw, err := base64.RawURLEncoding.DecodeString(ck.Value)
	if err != nil {
		return nil
	}
	kind, text, ok := strings.Cut(string(raw), "|")
	if !ok {
		return nil
	}
	return &Message{Kind: Kind(kind), Text: text}
}

// Redirect sets a flash and answers with 303 See Other.
func Redirect(c echo.Context, to string, kind Kind, text string) error {
	Set(c, kind, text)
	return c.Redirect(http.StatusSeeOther, to)
}
