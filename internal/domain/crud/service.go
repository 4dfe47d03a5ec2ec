package crud

import (
	"context"
	"encoding/json"

	"github.com/juju/errors"

	"shelter-services/internal/domain/sequence"
	"shelter-services/internal/platform/logger"
	"shelter-services/internal/platform/metrics"
)

// Service implementa las operaciones uniformes de un Entity Repository:
// create, listAll, getById, deleteById, replaceById y patchField.
type Service[T any, P RecordPtr[T]] struct {
	res  Resource
	repo Repository[T]
	seq  sequence.Store
	log  logger.Logger
}

func NewService[T any, P RecordPtr[T]](res Resource, repo Repository[T], seq sequence.Store, log logger.Logger) *Service[T, P] {
	if log == nil {
		log = logger.Nop()
	}
	return &Service[T, P]{
		res:  res,
		repo: repo,
		seq:  seq,
		log:  log.With(map[string]any{"resource": res.Collection}),
	}
}

func (s *Service[T, P]) Resource() Resource { return s.res }

// Create valida, pide un id al Sequence Store y persiste.
// Si la validación falla no se consume ningún id. Si el insert falla
// después de emitir el id, ese valor queda como hueco en la secuencia.
func (s *Service[T, P]) Create(ctx context.Context, in T) (T, error) {
	var zero T

	if err := Validate(s.res, in); err != nil {
		s.log.Debug("create rejected", map[string]any{"err": err})
		return zero, err
	}

	id, err := s.seq.Next(ctx, s.res.Counter)
	if err != nil {
		return zero, s.storageErr("create", err)
	}

	rec := in
	P(&rec).SetID(id)

	if err := s.repo.Insert(ctx, id, rec); err != nil {
		s.log.Warn("sequence value leaked", map[string]any{"id": id, "counter": s.res.Counter})
		return zero, s.storageErr("create", err)
	}

	s.log.Info("record created", map[string]any{"id": id})
	return rec, nil
}

func (s *Service[T, P]) List(ctx context.Context) ([]T, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, s.storageErr("list", err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (s *Service[T, P]) Get(ctx context.Context, id int64) (T, error) {
	var zero T

	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return zero, s.notFound(id)
		}
		return zero, s.storageErr("get", err)
	}
	return rec, nil
}

func (s *Service[T, P]) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if IsNotFound(err) {
			return s.notFound(id)
		}
		return s.storageErr("delete", err)
	}

	s.log.Info("record deleted", map[string]any{"id": id})
	return nil
}

// Replace sobrescribe los campos presentes en fields; los ausentes se conservan.
// El id nunca cambia. El registro resultante se valida completo.
func (s *Service[T, P]) Replace(ctx context.Context, id int64, fields map[string]json.RawMessage) (T, error) {
	var zero T

	current, err := s.Get(ctx, id)
	if err != nil {
		return zero, err
	}

	merged, err := s.merge(current, fields)
	if err != nil {
		return zero, err
	}
	P(&merged).SetID(id)

	if err := Validate(s.res, merged); err != nil {
		return zero, err
	}

	if err := s.repo.Update(ctx, id, merged); err != nil {
		if IsNotFound(err) {
			// borrado entre el Get y el Update
			return zero, s.notFound(id)
		}
		return zero, s.storageErr("update", err)
	}

	s.log.Info("record updated", map[string]any{"id": id, "fields": len(fields)})
	return merged, nil
}

// PatchField carga el registro, cambia exactamente un campo y lo vuelve a guardar.
func (s *Service[T, P]) PatchField(ctx context.Context, id int64, field string, value json.RawMessage) (T, error) {
	var zero T
	if field == "" || field == "id" {
		return zero, &ValidationError{Resource: s.res.Label, Invalid: []string{"field"}}
	}
	return s.Replace(ctx, id, map[string]json.RawMessage{field: value})
}

func (s *Service[T, P]) merge(current T, fields map[string]json.RawMessage) (T, error) {
	var zero T

	base, err := json.Marshal(current)
	if err != nil {
		return zero, errors.Annotatef(err, "encoding %s", s.res.Label)
	}

	doc := map[string]json.RawMessage{}
	if err := json.Unmarshal(base, &doc); err != nil {
		return zero, errors.Annotatef(err, "decoding %s", s.res.Label)
	}
	for k, v := range fields {
		if k == "id" || k == "_id" {
			continue
		}
		doc[k] = v
	}

	b, err := json.Marshal(doc)
	if err != nil {
		return zero, errors.Annotatef(err, "encoding %s", s.res.Label)
	}

	var out T
	if err := json.Unmarshal(b, &out); err != nil {
		return zero, decodeError(s.res, err)
	}
	return out, nil
}

func (s *Service[T, P]) notFound(id int64) error {
	return errors.NotFoundf("%s %d", s.res.Label, id)
}

func (s *Service[T, P]) storageErr(op string, err error) error {
	metrics.RecordStoreError(s.res.Collection, op)
	s.log.Error("storage failure", map[string]any{"op": op, "err": err})
	return &StorageError{Resource: s.res.Label, Op: op, Err: err}
}
