// Package recall inserts previously entered input at the cursor. It
// resolves which input-history sequence applies to the current
// editing context, offers the sequence through the host's selection
// facility, and inserts the chosen entry. Setup installs the key
// binding into the configured keymaps as their features load.
package recall
