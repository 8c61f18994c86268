package patients

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/gestox/gestox/internal/platform/action"
	"github.com/gestox/gestox/internal/platform/apiclient"
)

const basePath = "/patients"

type Service struct {
	api *apiclient.Client
	log zerolog.Logger
}

func NewService(api *apiclient.Client, log zerolog.Logger) *Service {
	return &Service{api: api, log: log}
}

func (s *Service) List(ctx context.Context, query map[string]string) action.ListResult[View] {
	opts := make([]apiclient.CallOption, 0, len(query))
	for k, v := range query {
		opts = append(opts, apiclient.WithQuery(k, v))
	}

	env, err := s.api.Get(ctx, basePath, opts...)
	if err != nil {
		s.log.Error().Err(err).Msg("list patients failed")
		return action.FailList[View](err)
	}

	var page struct {
		Items []Record `json:"items"`
		Total int      `json:"total"`
	}
	if err := env.Decode(&page); err != nil {
		var records []Record
		if err2 := env.Decode(&records); err2 != nil {
			return action.FailList[View](err)
		}
		page.Items = records
		page.Total = len(records)
	}

	views := make([]View, 0, len(page.Items))
	for _, r := range page.Items {
		views = append(views, r.ToView())
	}
	return action.OKList(views, page.Total)
}

func (s *Service) Get(ctx context.Context, id string) action.Result[View] {
	env, err := s.api.Get(ctx, basePath+"/"+id)
	if err != nil {
		s.log.Error().Err(err).Str("id", id).Msg("get patient failed")
		return action.Fail[View](err)
	}
	var r Record
	if err := env.Decode(&r); err != nil {
		return action.Fail[View](err)
	}
	return action.OK(r.ToView())
}

func (s *Service) Create(ctx context.Context, v View) action.Result[View] {
	env, err := s.api.Post(ctx, basePath, v.ToRecord())
	if err != nil {
		s.log.Error().Err(err).Msg("create patient failed")
		return action.Fail[View](err)
	}
	var r Record
	if err := env.Decode(&r); err != nil {
		return action.Fail[View](err)
	}
	return action.OK(r.ToView())
}

func (s *Service) Update(ctx context.Context, id string, v View) action.Result[View] {
	rec := v.ToRecord()
	rec.ID = id
	env, err := s.api.Put(ctx, basePath+"/"+id, rec)
	if err != nil {
		s.log.Error().Err(err).Str("id", id).Msg("update patient failed")
		return action.Fail[View](err)
	}
	var r Record
	if err := env.Decode(&r); err != nil {
		return action.Fail[View](err)
	}
	return action.OK(r.ToView())
}

func (s *Service) Delete(ctx context.Context, id string) action.Result[View] {
	if _, err := s.api.Delete(ctx, basePath+"/"+id); err != nil {
		s.log.Error().Err(err).Str("id", id).Msg("delete patient failed")
		return action.Fail[View](err)
	}
	return action.Done[View]()
}
