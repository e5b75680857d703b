package gcal

import (
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
)

const freebusyScope = "https://www.googleapis.com/auth/calendar.freebusy"

// NewOAuthConfig builds the OAuth2 config used for the authorization flow
// and for refreshing stored tokens.
func NewOAuthConfig(clientID, clientSecret, redirectURI string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURI,
		Scopes: []string{
			calendar.CalendarEventsScope,
			freebusyScope,
		},
		Endpoint: google.Endpoint,
	}
}
