// Package config provides the YAML configuration surface for the
// routing gateway: the listener, logging, match cache sizing, and the
// route table that the bootstrap turns into registration calls.
//
// Configuration is loaded once at startup, validated, and then handed
// to the server; there is no live reload, consistent with routes being
// registered once before traffic begins.
package config
