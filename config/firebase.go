package config

import "google.golang.org/api/option"

// FirebaseClientOptions returns the client options shared by the Firebase app
// and the Identity Toolkit client. Without a credentials file the application
// default credentials are used.
func (c Config) FirebaseClientOptions() []option.ClientOption {
	var opts []option.ClientOption
	if c.FirebaseCredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(c.FirebaseCredentialsFile))
	}
	return opts
}
