package rechat

// Version is the release of the rechat module.
const Version = "0.3.0"
