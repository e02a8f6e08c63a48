package postagem

import "gorm.io/gorm"

type Repository interface {
	Criar(db *gorm.DB, p *Postagem) error
	Salvar(db *gorm.DB, p *Postagem) error
	BuscarPorID(db *gorm.DB, id uint) (*Postagem, error)
	BuscarPorSlug(db *gorm.DB, slug string) (*Postagem, error)
	Listar(db *gorm.DB, pagina, limite int, somentePublicadas bool) ([]Postagem, int64, error)
	Deletar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Criar(db *gorm.DB, p *Postagem) error {
	return db.Create(p).Error
}

func (r *repositoryImpl) Salvar(db *gorm.DB, p *Postagem) error {
	return db.Save(p).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Postagem, error) {
	var p Postagem
	err := db.First(&p, id).Error
	return &p, err
}

func (r *repositoryImpl) BuscarPorSlug(db *gorm.DB, slug string) (*Postagem, error) {
	var p Postagem
	err := db.Where("slug = ?", slug).First(&p).Error
	return &p, err
}

func (r *repositoryImpl) Listar(db *gorm.DB, pagina, limite int, somentePublicadas bool) ([]Postagem, int64, error) {
	consulta := db.Model(&Postagem{})
	if somentePublicadas {
		consulta = consulta.Where("publicada = ?", true)
	}
	var total int64
	if err := consulta.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var postagens []Postagem
	err := consulta.Order("created_at DESC").
		Offset((pagina - 1) * limite).
		Limit(limite).
		Find(&postagens).Error
	return postagens, total, err
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	return db.Delete(&Postagem{}, id).Error
}
