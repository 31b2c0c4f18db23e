// Package server exposes the translation pipeline over HTTP for the
// browser-extension presentation layer: POST /translate runs a page
// translation, GET /health reports service status. Responses carry CORS
// headers so the extension can call the backend from any origin.
package server
