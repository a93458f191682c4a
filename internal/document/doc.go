// Package document parses castwave configuration documents (Server.xml,
// Logger.xml) into a navigable tree and re-emits them as XML or JSON.
//
// A Document is deliberately schema-agnostic: it exposes the root element's
// version attribute, the accessors the logger reload path needs (LogPath,
// Tags), and generic re-emission. Schema interpretation beyond that belongs
// to the callers.
package document
