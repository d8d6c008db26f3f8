// Package cli holds the cobra command tree of the back-office client.
//
// Running the binary without a subcommand opens the dashboard. Every command
// shares the configuration flags registered by [config.BindFlags] on the root
// persistent flag set.
package cli
