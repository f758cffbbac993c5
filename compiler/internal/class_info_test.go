package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassInfoInheritsSlots(t *testing.T) {
	object := NewClassInfo("object", 0, nil)
	object.AddMethod(NewFuncInfo("object.__init__", 0, nil, nil, nil))

	animal := NewClassInfo("Animal", 5, object)
	animal.AddAttribute(NewAttrInfo("legs", ""))
	animal.AddAttribute(NewAttrInfo("sound", ""))
	animal.AddMethod(NewFuncInfo("Animal.makeSound", 0, nil, nil, nil))

	dog := NewClassInfo("Dog", 6, animal)
	dog.AddAttribute(NewAttrInfo("name", ""))

	// inherited slots keep their indexes in the subclass
	assert.Equal(t, animal.GetAttributeIndex("legs"), dog.GetAttributeIndex("legs"))
	assert.Equal(t, animal.GetAttributeIndex("sound"), dog.GetAttributeIndex("sound"))
	assert.Equal(t, 2, dog.GetAttributeIndex("name"))
	assert.Equal(t, animal.GetMethodIndex("makeSound"), dog.GetMethodIndex("makeSound"))
	assert.Equal(t, 0, dog.GetMethodIndex("__init__"))
}

func TestClassInfoOverridesInPlace(t *testing.T) {
	object := NewClassInfo("object", 0, nil)
	object.AddMethod(NewFuncInfo("object.__init__", 0, nil, nil, nil))

	animal := NewClassInfo("Animal", 5, object)
	animal.AddAttribute(NewAttrInfo("sound", ""))
	animal.AddMethod(NewFuncInfo("Animal.makeSound", 0, nil, nil, nil))

	dog := NewClassInfo("Dog", 6, animal)
	override := NewFuncInfo("Dog.makeSound", 0, nil, nil, nil)
	dog.AddMethod(override)
	dog.AddAttribute(NewAttrInfo("sound", "const_2"))

	assert.Equal(t, animal.GetMethodIndex("makeSound"), dog.GetMethodIndex("makeSound"))
	assert.Equal(t, override, dog.Methods[dog.GetMethodIndex("makeSound")])
	assert.Equal(t, animal.GetAttributeIndex("sound"), dog.GetAttributeIndex("sound"))
	assert.Equal(t, Label("const_2"), dog.Attributes[dog.GetAttributeIndex("sound")].InitialValue)
	assert.Len(t, dog.Attributes, 1)
	assert.Len(t, dog.Methods, 2)

	// the superclass lists are untouched
	assert.Equal(t, "Animal.makeSound", animal.Methods[animal.GetMethodIndex("makeSound")].FuncName)
	assert.Equal(t, Label(""), animal.Attributes[0].InitialValue)
}

func TestClassInfoLabels(t *testing.T) {
	classInfo := NewClassInfo("C", 5, nil)
	assert.Equal(t, Label("$C$prototype"), classInfo.PrototypeLabel)
	assert.Equal(t, Label("$C$dispatchTable"), classInfo.DispatchTableLabel)
	assert.Equal(t, -1, classInfo.GetAttributeIndex("missing"))
	assert.Equal(t, -1, classInfo.GetMethodIndex("missing"))
}
