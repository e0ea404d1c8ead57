// Package fuzztests houses Go fuzz harnesses for the Python pipeline
// (source -> lexer -> parser -> token dump). They look for panics and
// broken token streams on arbitrary input.
//
// Назначение: прогонять случайные байты через FileSet, лексер, парсер и
// форматтер дампа, проверяя инварианты потока токенов.
//
// Не делает: генерацию корпусов, запись golden-файлов, запуск CLI.
//
// Зависимости: internal/source, internal/lexer, internal/parser,
// internal/diag, internal/diagfmt, internal/testkit.
package fuzztests
