package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"humorpedia/internal/models"
	"humorpedia/internal/repository"
	"humorpedia/internal/utils"
)

func newSectionService(t *testing.T) *SectionService {
	t.Helper()
	db, err := utils.InitDatabase(":memory:")
	require.NoError(t, err)
	return NewSectionService(repository.NewSectionRepository(db))
}

func makeSection(t *testing.T, svc *SectionService, title string, parentID *string) *models.Section {
	t.Helper()
	sec := &models.Section{Title: title, ParentID: parentID}
	require.NoError(t, svc.Create(sec))
	return sec
}

func TestSectionPathDerivation(t *testing.T) {
	svc := newSectionService(t)

	root := makeSection(t, svc, "Юмористы", nil)
	assert.Equal(t, "/yumoristy", root.FullPath)
	assert.Equal(t, 0, root.Level)

	child := makeSection(t, svc, "Пародисты", &root.ID)
	assert.Equal(t, "/yumoristy/parodisty", child.FullPath)
	assert.Equal(t, "/yumoristy", child.ParentPath)
	assert.Equal(t, 1, child.Level)
}

func TestSectionFullPathConflict(t *testing.T) {
	svc := newSectionService(t)

	makeSection(t, svc, "Архив", nil)

	dup := &models.Section{Title: "Архив"}
	err := svc.Create(dup)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "уже существует")
}

func TestSectionMoveRebuildsSubtreePaths(t *testing.T) {
	svc := newSectionService(t)

	oldHome := makeSection(t, svc, "Старое", nil)
	newHome := makeSection(t, svc, "Новое", nil)
	mid := makeSection(t, svc, "Середина", &oldHome.ID)
	leaf := makeSection(t, svc, "Лист", &mid.ID)
	assert.Equal(t, "/staroe/seredina/list", leaf.FullPath)

	mid.ParentID = &newHome.ID
	require.NoError(t, svc.Update(mid))
	assert.Equal(t, "/novoe/seredina", mid.FullPath)

	movedLeaf, err := svc.Get(leaf.ID)
	require.NoError(t, err)
	assert.Equal(t, "/novoe/seredina/list", movedLeaf.FullPath)
	assert.Equal(t, 2, movedLeaf.Level)
}

func TestSectionRejectsCircularMove(t *testing.T) {
	svc := newSectionService(t)

	parent := makeSection(t, svc, "Родитель", nil)
	child := makeSection(t, svc, "Ребёнок", &parent.ID)

	parent.ParentID = &child.ID
	err := svc.Update(parent)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "не может быть вложен сам в себя")
}

func TestSectionDeleteWithChildrenRefused(t *testing.T) {
	svc := newSectionService(t)

	parent := makeSection(t, svc, "Шоу", nil)
	child := makeSection(t, svc, "Выпуски", &parent.ID)

	err := svc.Delete(parent.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "вложенные разделы")

	require.NoError(t, svc.Delete(child.ID))
	require.NoError(t, svc.Delete(parent.ID))
}

func TestSectionGetByPathNormalizesSlash(t *testing.T) {
	svc := newSectionService(t)

	makeSection(t, svc, "Новости", nil)

	sec, err := svc.GetByPath("novosti")
	require.NoError(t, err)
	assert.Equal(t, "/novosti", sec.FullPath)
}

func TestSectionTree(t *testing.T) {
	svc := newSectionService(t)

	root := makeSection(t, svc, "Корень", nil)
	a := makeSection(t, svc, "А-ветка", &root.ID)
	makeSection(t, svc, "Б-ветка", &root.ID)
	makeSection(t, svc, "Глубина", &a.ID)

	roots, err := svc.Tree()
	require.NoError(t, err)
	require.Len(t, roots, 1)
	require.Len(t, roots[0].Children, 2)

	var aNode *models.SectionNode
	for _, n := range roots[0].Children {
		if n.ID == a.ID {
			aNode = n
		}
	}
	require.NotNil(t, aNode)
	assert.Len(t, aNode.Children, 1)
}
