package fakebackend

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wolfman30/dental-clinic-client/internal/clinic"
)

// resource exposes one table over REST. prepare validates and normalizes a
// record before it is stored; expand fills embedded records on the way out.
// Both run with b.mu held.
type resource[T any] struct {
	b       *Backend
	t       *table[T]
	prepare func(r *http.Request, v *T) error
	expand  func(v T) T
}

func (res resource[T]) out(v T) T {
	if res.expand == nil {
		return v
	}
	return res.expand(v)
}

func (res resource[T]) outAll(rows []T) []T {
	for i := range rows {
		rows[i] = res.out(rows[i])
	}
	return rows
}

func (res resource[T]) list(w http.ResponseWriter, r *http.Request) {
	res.b.mu.RLock()
	rows := res.outAll(res.t.all())
	res.b.mu.RUnlock()
	writeJSON(w, http.StatusOK, rows)
}

// listBy serves the rows whose match reports true for the {param} of the URL.
func (res resource[T]) listBy(param string, match func(v T, value string) bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		value := chi.URLParam(r, param)
		res.b.mu.RLock()
		rows := res.outAll(res.t.where(func(v T) bool { return match(v, value) }))
		res.b.mu.RUnlock()
		writeJSON(w, http.StatusOK, rows)
	}
}

func (res resource[T]) get(w http.ResponseWriter, r *http.Request) {
	id := clinic.ID(chi.URLParam(r, "id"))
	res.b.mu.RLock()
	v, ok := res.t.get(id)
	if ok {
		v = res.out(v)
	}
	res.b.mu.RUnlock()
	if !ok {
		writeErr(w, notFound(res.t.notFound()))
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (res resource[T]) create(w http.ResponseWriter, r *http.Request) {
	var v T
	if err := decode(r, &v); err != nil {
		writeErr(w, err)
		return
	}

	res.b.mu.Lock()
	defer res.b.mu.Unlock()
	if res.prepare != nil {
		if err := res.prepare(r, &v); err != nil {
			writeErr(w, err)
			return
		}
	}
	v = res.t.insert(v, res.b.newID())
	writeJSON(w, http.StatusCreated, res.out(v))
}

// update merges the request body into the stored record, so a body carrying
// only some fields leaves the others as they were.
func (res resource[T]) update(w http.ResponseWriter, r *http.Request) {
	id := clinic.ID(chi.URLParam(r, "id"))
	body, err := readBody(r)
	if err != nil {
		writeErr(w, err)
		return
	}

	res.b.mu.Lock()
	defer res.b.mu.Unlock()
	v, ok := res.t.get(id)
	if !ok {
		writeErr(w, notFound(res.t.notFound()))
		return
	}
	if err := json.Unmarshal(body, &v); err != nil {
		writeErr(w, badRequest("Invalid request body"))
		return
	}
	*res.t.key(&v) = id
	if res.prepare != nil {
		if err := res.prepare(r, &v); err != nil {
			writeErr(w, err)
			return
		}
	}
	res.t.put(v)
	writeJSON(w, http.StatusOK, res.out(v))
}

func (res resource[T]) remove(w http.ResponseWriter, r *http.Request) {
	id := clinic.ID(chi.URLParam(r, "id"))
	res.b.mu.Lock()
	ok := res.t.delete(id)
	res.b.mu.Unlock()
	if !ok {
		writeErr(w, notFound(res.t.notFound()))
		return
	}
	writeMessage(w, res.t.noun+" deleted")
}

// crud registers the usual routes under prefix.
func (res resource[T]) crud(r chi.Router, prefix string, get, update bool) {
	r.Get(prefix, res.list)
	r.Post(prefix, res.create)
	if get {
		r.Get(prefix+"/{id}", res.get)
	}
	if update {
		r.Put(prefix+"/{id}", res.update)
	}
	r.Delete(prefix+"/{id}", res.remove)
}
