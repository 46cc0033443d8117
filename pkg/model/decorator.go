package model

// Decorator adjusts a form after it has been derived from the API document.
type Decorator interface {
	Decorate(*FormModel) error
}

// DecoratorFunc lets a plain function act as a Decorator.
type DecoratorFunc func(*FormModel) error

func (fn DecoratorFunc) Decorate(form *FormModel) error {
	return fn(form)
}

// Chain runs decorators in order and stops at the first error. Nil entries
// are skipped.
func Chain(decorators ...Decorator) Decorator {
	return DecoratorFunc(func(form *FormModel) error {
		for _, d := range decorators {
			if d == nil {
				continue
			}
			if err := d.Decorate(form); err != nil {
				return err
			}
		}
		return nil
	})
}

// Hints sets Description on the fields bound to the given page elements.
// Elements the form does not read are ignored.
func Hints(hints map[string]string) Decorator {
	return DecoratorFunc(func(form *FormModel) error {
		for i := range form.Fields {
			if hint, ok := hints[form.Fields[i].Element]; ok {
				form.Fields[i].Description = hint
			}
		}
		return nil
	})
}
