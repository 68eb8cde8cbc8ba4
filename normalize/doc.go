/*
Package normalize reshapes stored multilingual documents into a flat view
for one language.

Three storage shapes are recognized, see Shape:

	// ShapeSplit
	{"id": "m1", "ru": {"title": "Тест"}, "en": {"title": "Test"}}

	// ShapePerField
	{"status": "completed", "title": {"ru": "Тест", "en": "Test"}}

	// ShapeFlat
	{"status": "completed", "title": "Тест"}

Resolution falls back from the target language to the default language and
then to an empty value. Normalization never fails.
*/
package normalize
