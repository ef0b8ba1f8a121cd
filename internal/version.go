package internal

// Version is the current wordcycle release.
const Version = "0.3.1"
