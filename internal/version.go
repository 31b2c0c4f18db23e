package internal

// Version is the current pagelingo release version.
var Version = "0.3.0"
