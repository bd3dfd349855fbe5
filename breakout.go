/*
Package breakout holds the application level configuration and shared
constants for the breakout detection service and command line tools.
*/
package breakout

// BuildRevision stores the commit in the git repository at build time and is
// specified with -ldflags at build time.
var BuildRevision = ""
