// Package driven defines the outbound ports of the Docsmith core: the
// interfaces infrastructure adapters implement so the workflow services can
// stay free of provider, storage, and filesystem concerns.
package driven
