// Package theme holds the dark/light theme flag for an application.
// A Holder is built once at the application root with a preference store and
// a system preference probe, mounted once, and then handed to every view that
// needs it as a Provider.
package theme
