package vars

var GitVersion string

const Version = "0.1.0"
