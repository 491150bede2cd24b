package model

import "time"

// GoogleCredential holds one user's OAuth state for the Google document
// provider. At most one record exists per user at any time: every successful
// code exchange replaces the previous record wholesale (upsert on user_id),
// and an expired access token is refreshed in place.
type GoogleCredential struct {
	UserID       string    `bson:"user_id" json:"user_id"`
	AccessToken  string    `bson:"access_token" json:"-"`
	RefreshToken string    `bson:"refresh_token" json:"-"`
	TokenURI     string    `bson:"token_uri" json:"token_uri"`
	ClientID     string    `bson:"client_id" json:"client_id"`
	Scopes       []string  `bson:"scopes" json:"scopes"`
	Expiry       time.Time `bson:"expiry" json:"expiry"`
}

// Expired reports whether the access token needs a refresh before use.
func (c *GoogleCredential) Expired(now time.Time) bool {
	return !c.Expiry.IsZero() && !now.Before(c.Expiry)
}
