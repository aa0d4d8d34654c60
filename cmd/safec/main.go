// Command safec is the SafeC compiler front-end driver: preprocess, lex,
// parse, and semantically analyze one translation unit, following
// go-corset's cmd/main.go + pkg/cmd cobra layout.
package main

func main() {
	Execute()
}
