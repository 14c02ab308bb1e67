package models

// NamedEntity is the shape shared by the catalog taxonomy tables.
type NamedEntity interface {
	GetID() uint
	GetName() string
	SetName(name string)
}

type Category struct {
	ID   uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"size:255;not null;uniqueIndex"`
}

func (c *Category) GetID() uint         { return c.ID }
func (c *Category) GetName() string     { return c.Name }
func (c *Category) SetName(name string) { c.Name = name }

type Manufacturer struct {
	ID   uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"size:255;not null;uniqueIndex"`
}

func (m *Manufacturer) GetID() uint         { return m.ID }
func (m *Manufacturer) GetName() string     { return m.Name }
func (m *Manufacturer) SetName(name string) { m.Name = name }

type Material struct {
	ID   uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"size:255;not null;uniqueIndex"`
}

func (m *Material) GetID() uint         { return m.ID }
func (m *Material) GetName() string     { return m.Name }
func (m *Material) SetName(name string) { m.Name = name }
