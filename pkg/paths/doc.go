// Package paths provides centralized path handling for cuepine.
//
// It resolves the user's home directory, performs the $HOME substitution on
// install entry directories, resolves relative paths against a document's
// own directory and locates the tool's XDG directories.
//
// # Environment Variables
//
//   - HOME: the home directory substituted for the literal token $HOME
//   - CUEPINE_CONFIG_DIR: override the XDG config directory (default: $XDG_CONFIG_HOME/cuepine)
//   - CUEPINE_CONFIG: explicit path to the tool settings file
//
// # Usage
//
//	home, err := paths.GetHomeDirectory()
//	dir := paths.ResolveDir("$HOME/bin", home, "/project/scripts") // /home/user/bin
package paths
