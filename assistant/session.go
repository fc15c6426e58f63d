package assistant

import "sync"

// SessionRepo はセッションIDで引くリポジトリ。暗黙のグローバルは持たず、
// ワークフローへ明示的に渡す。永続化は不要（プロセス内のみ）。
type SessionRepo interface {
	Get(id string) (*Session, bool)
	Put(sess *Session)
	Delete(id string)
}

// MemoryRepo はプロセス内のセッションストア。
// Get と Put は複製を受け渡すので、取得後の変更は Put するまで保存されない。
type MemoryRepo struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{sessions: make(map[string]*Session)}
}

func cloneSession(sess *Session) *Session {
	cp := *sess
	cp.Structure = append([]string(nil), sess.Structure...)
	return &cp
}

func (r *MemoryRepo) Get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	return cloneSession(sess), true
}

func (r *MemoryRepo) Put(sess *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[sess.ID] = cloneSession(sess)
}

func (r *MemoryRepo) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}
