// Package audit reports how completely the stored content is translated.
//
// Split documents count as complete when they carry every supported language
// key. Translation documents are grouped by section, so ru_hero and en_hero
// form one complete entry.
package audit
