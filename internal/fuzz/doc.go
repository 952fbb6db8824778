// Package fuzztests houses Go fuzz harnesses for the modified UTF-8 codec,
// the name table and the lint span pipeline (outline -> parse -> attribute
// -> LintAt). They guard against panics and check round-trip and span
// invariants on arbitrary inputs.
//
// Назначение: прогонять произвольные байты через кодек, таблицу имён и
// построение карты линтов.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/mutf8, internal/names, internal/outline,
// internal/session, internal/lintmap, internal/testkit.
package fuzztests
