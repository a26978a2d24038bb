// Package fuzztests houses Go fuzz harnesses for the kiwi front end
// (source -> lexer -> parser -> validator -> plan). The goal is to catch
// panics, hangs and broken span invariants on arbitrary input.
//
// Назначение: загрузить байты в FileSet и прогнать их через весь конвейер.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
