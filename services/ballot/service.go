// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package ballot

import (
	"context"
	"github.com/orbs-network/orbs-ballot-ledger/instrumentation/logfields"
	"github.com/orbs-network/orbs-ballot-ledger/instrumentation/metric"
	"github.com/orbs-network/orbs-ballot-ledger/services/ballot/adapter"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
	"math"
	"sync"
	"time"
)

var LogTag = log.Service("ballot-store")

type Config interface {
	BallotNamespace() string
}

type Service struct {
	sync.Mutex
	persistence adapter.KeyValuePersistence
	namespace   string
	logger      log.Logger
	metrics     *metrics

	handlersMutex sync.RWMutex
	handlers      []VoteCastHandler
}

func NewBallotStore(config Config, persistence adapter.KeyValuePersistence, parentLogger log.Logger, metricFactory metric.Factory) *Service {
	return &Service{
		persistence: persistence,
		namespace:   config.BallotNamespace(),
		logger:      parentLogger.WithTags(LogTag, logfields.Namespace(config.BallotNamespace())),
		metrics:     newMetrics(metricFactory),
	}
}

func (s *Service) RegisterVoteCastHandler(handler VoteCastHandler) {
	s.handlersMutex.Lock()
	defer s.handlersMutex.Unlock()

	s.handlers = append(s.handlers, handler)
}

func (s *Service) Initialize(ctx context.Context) error {
	s.Lock()
	defer s.Unlock()

	err := s.persistence.CreateNamespace(ctx, s.namespace)
	if errors.Cause(err) == adapter.ErrNamespaceExists {
		return errors.Wrapf(ErrAlreadyInitialized, "namespace %s", s.namespace)
	} else if err != nil {
		s.metrics.failed.Inc()
		return errors.Wrapf(err, "failed to create namespace %s", s.namespace)
	}

	s.logger.Info("ballot store initialized")
	return nil
}

func (s *Service) RegisterProject(ctx context.Context, projectId string) error {
	s.Lock()
	defer s.Unlock()

	if err := s.registerProject(ctx, projectId); err != nil {
		s.metrics.failed.Inc()
		return err
	}

	s.metrics.registeredProjects.Inc()
	s.logger.Info("project registered", logfields.ProjectId(projectId))
	return nil
}

func (s *Service) registerProject(ctx context.Context, projectId string) error {
	state, err := s.openState(ctx)
	if err != nil {
		return err
	}

	if projectId == "" {
		return ErrInvalidProjectId
	}

	_, registered, err := s.readVoteCount(ctx, state, projectId)
	if err != nil {
		return err
	}
	if registered {
		return errors.Wrapf(ErrDuplicateProject, "project %s", projectId)
	}

	state.setValue(projectId, encodeVoteCount(0))
	if err := state.commit(ctx); err != nil {
		return errors.Wrapf(err, "failed to commit registration of project %s", projectId)
	}
	return nil
}

// Returns the receipt of the new vote, or nil when the next slot was already consumed and nothing changed.
func (s *Service) CastVote(ctx context.Context, projectId string, voterIdentity string) (*VoteReceipt, error) {
	start := time.Now()
	defer s.metrics.castVoteTime.RecordSince(start)

	s.Lock()
	receipt, err := s.castVote(ctx, projectId, voterIdentity)
	s.Unlock()

	if err != nil {
		s.metrics.failed.Inc()
		return nil, err
	}

	if receipt == nil {
		s.metrics.slotsConsumed.Inc()
		s.logger.Info("vote slot already consumed, ignoring vote", logfields.ProjectId(projectId), logfields.Voter(voterIdentity))
		return nil, nil
	}

	s.metrics.votesCast.Inc()
	s.metrics.castVoteRate.Measure(1)
	s.logger.Info("vote cast", logfields.ProjectId(projectId), logfields.VoteIndex(receipt.Index), logfields.Voter(voterIdentity))

	s.notifyVoteCast(ctx, receipt)
	return receipt, nil
}

func (s *Service) castVote(ctx context.Context, projectId string, voterIdentity string) (*VoteReceipt, error) {
	state, err := s.openState(ctx)
	if err != nil {
		return nil, err
	}

	if voterIdentity == "" {
		return nil, ErrInvalidVoter
	}

	count, registered, err := s.readVoteCount(ctx, state, projectId)
	if err != nil {
		return nil, err
	}
	if !registered {
		return nil, errors.Wrapf(ErrUnknownProject, "project %s", projectId)
	}

	slot := receiptKey(projectId, count)
	if _, occupied, err := state.getValue(ctx, slot); err != nil {
		return nil, errors.Wrapf(err, "failed to read vote receipt %s", slot)
	} else if occupied {
		return nil, nil
	}

	if count == math.MaxUint32 {
		return nil, errors.Wrapf(ErrVoteCountOverflow, "project %s", projectId)
	}

	state.setValue(slot, []byte(voterIdentity))
	state.setValue(projectId, encodeVoteCount(count+1))
	if err := state.commit(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to commit vote %s", slot)
	}

	return &VoteReceipt{ProjectId: projectId, Index: count, Voter: voterIdentity}, nil
}

func (s *Service) GetTotalVoteCount(ctx context.Context, projectId string) (uint32, error) {
	s.Lock()
	defer s.Unlock()

	state, err := s.openState(ctx)
	if err != nil {
		return 0, err
	}

	count, registered, err := s.readVoteCount(ctx, state, projectId)
	if err != nil {
		return 0, err
	}
	if !registered {
		return 0, errors.Wrapf(ErrUnknownProject, "project %s", projectId)
	}
	return count, nil
}

func (s *Service) GetVoteReceipt(ctx context.Context, projectId string, index uint32) (*VoteReceipt, error) {
	s.Lock()
	defer s.Unlock()

	state, err := s.openState(ctx)
	if err != nil {
		return nil, err
	}

	_, registered, err := s.readVoteCount(ctx, state, projectId)
	if err != nil {
		return nil, err
	}
	if !registered {
		return nil, errors.Wrapf(ErrUnknownProject, "project %s", projectId)
	}

	key := receiptKey(projectId, index)
	voter, found, err := state.getValue(ctx, key)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read vote receipt %s", key)
	}
	if !found || len(voter) == 0 {
		return nil, errors.Wrapf(ErrReceiptNotFound, "vote receipt %s", key)
	}

	return &VoteReceipt{ProjectId: projectId, Index: index, Voter: string(voter)}, nil
}

func (s *Service) openState(ctx context.Context) (*transientState, error) {
	exists, err := s.persistence.HasNamespace(ctx, s.namespace)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to look up namespace %s", s.namespace)
	}
	if !exists {
		return nil, errors.Wrapf(ErrMissingStoreHandle, "namespace %s", s.namespace)
	}
	return newTransientState(s.persistence, s.namespace), nil
}

func (s *Service) readVoteCount(ctx context.Context, state *transientState, projectId string) (uint32, bool, error) {
	value, found, err := state.getValue(ctx, projectId)
	if err != nil {
		return 0, false, errors.Wrapf(err, "failed to read project %s", projectId)
	}
	if !found {
		return 0, false, nil
	}
	return decodeVoteCount(projectId, value)
}

func (s *Service) notifyVoteCast(ctx context.Context, receipt *VoteReceipt) {
	s.handlersMutex.RLock()
	defer s.handlersMutex.RUnlock()

	for _, handler := range s.handlers {
		if err := handler.HandleVoteCast(ctx, receipt); err != nil {
			s.logger.Error("vote cast handler failed", log.Error(err), logfields.ProjectId(receipt.ProjectId), logfields.VoteIndex(receipt.Index))
		}
	}
}
