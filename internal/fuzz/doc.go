// Package fuzztests houses Go fuzz harnesses for the front half of the
// pipeline (source -> lexer -> parser -> canonicalizer). They guard against
// panics and hangs on arbitrary input.
//
// Назначение: загрузить байты в FileSet и прогнать их через лексер, парсер
// и канонизатор.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
