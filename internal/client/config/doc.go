// Package config loads settings for the knotctl client.
//
// Sources, later ones winning:
//   - defaults (LoadDefaults)
//   - environment: KNOTHOST_SERVER_URL, KNOTHOST_TOKEN
//   - JSON file given with -c or -config
//   - flags: -a server URL, -t request timeout in seconds
//
// JSON example:
//
//	{
//	  "server_url": "https://api.knothost.example",
//	  "request_timeout": "5s"
//	}
package config
