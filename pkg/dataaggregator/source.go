package dataaggregator

import (
	"context"
	"reflect"
)

type DataSource interface {
	GetName() string
	Supports() []reflect.Type
	Lookup(context.Context, any) (interface{}, error)
}
