/*
 * Copyright (C) 2019-2025 Hedera Hashgraph, LLC
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
)

const application = "arbor-directory"

const (
	resultFailure = "failure"
	resultSuccess = "success"
)

var (
	checkpointGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "arbor_directory_checkpoint_block",
		Help: "Block number of the last processed registry event.",
	})

	eventsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "arbor_directory_events_total",
		Help: "Number of registry events processed.",
	}, []string{"kind", "result"})

	resolveDurationHistogram = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "arbor_directory_resolve_duration",
		Buckets: []float64{.25, .5, 1, 2.5, 5, 10, 30},
		Help:    "Time (in seconds) spent resolving and storing an organization.",
	}, []string{"result"})
)

func init() {
	register := prometheus.WrapRegistererWith(prometheus.Labels{"application": application}, prometheus.DefaultRegisterer)
	register.MustRegister(checkpointGauge)
	register.MustRegister(eventsCounter)
	register.MustRegister(resolveDurationHistogram)
}

func result(err error) string {
	if err != nil {
		return resultFailure
	}

	return resultSuccess
}
