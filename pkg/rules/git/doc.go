// Package git keeps a local clone of a rule repository up to date.
//
// Repository.Sync clones on first use and pulls afterwards, reporting
// whether HEAD moved and which files changed. The rule source and the
// scheduled poller in pkg/rules/manager build on it; neither needs to know
// about transports or credentials.
//
// Authentication is selected by configuration: "token" (HTTPS basic auth
// with a personal access token), "ssh" (private key file, which must not be
// group or world readable) or "none" for public repositories.
package git
