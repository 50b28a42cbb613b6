package service

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/m4go/m4go/config"
	"github.com/m4go/m4go/eval"
	"github.com/m4go/m4go/expand"
	"github.com/m4go/m4go/numb"
)

func (s *Server) handleExpand(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ExpandRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	cfg := config.DefaultConfig()
	if req.LeftQuote != "" || req.RightQuote != "" {
		cfg.Syntax.LeftQuote = req.LeftQuote
		cfg.Syntax.RightQuote = req.RightQuote
	}
	if req.BeginComment != "" || req.EndComment != "" {
		cfg.Syntax.BeginComment = req.BeginComment
		cfg.Syntax.EndComment = req.EndComment
	}
	if req.Backend != "" {
		cfg.Eval.Backend = req.Backend
	}

	var out bytes.Buffer
	d := expand.New(cfg, &out)
	if err := d.Run("<request>", strings.NewReader(req.Source)); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	resp := ExpandResponse{Output: out.String()}
	for _, diagnostic := range d.Diags.Items() {
		resp.Diagnostics = append(resp.Diagnostics, diagnostic.String())
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleEval(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req EvalRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	radix := req.Radix
	if radix == 0 {
		radix = 10
	}
	width := req.Width
	if width == 0 {
		width = 1
	}

	newNum := func() numb.Number { return numb.NewFixed64() }
	if req.Backend == "rational" {
		newNum = func() numb.Number { return numb.NewRational() }
	}

	result, err := eval.Evaluate(req.Expr, radix, width, newNum)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, EvalResponse{Result: result})
}
