// Package services holds the shared error taxonomy and context annotations
// used by pipeline phases and external tool clients.
package services
