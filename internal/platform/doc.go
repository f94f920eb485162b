// Package platform contains OS integration glue: filesystem helpers for the
// download directory and revealing saved packages in the system file manager.
package platform
