package testfixtures

import (
	"github.com/broady/shimgen/classify"
	"github.com/broady/shimgen/registry"
	"github.com/broady/shimgen/vocab"
)

// Classifier returns a classifier over the fixture registry and the
// default vocabulary.
func Classifier() *classify.Classifier {
	r, err := registry.FromAPI(API())
	if err != nil {
		panic(err)
	}
	return classify.New(vocab.VertxMutiny(), r)
}
