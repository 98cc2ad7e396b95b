// Package platform contains OS integration: filesystem helpers, job file
// reading and writing, and opening folders in the system file manager.
package platform
