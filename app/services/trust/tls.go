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

package trust

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"net"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// isSslProved checks the certificate served on <host>:443 is issued to the host and to the organization name
func (e *engine) isSslProved(ctx context.Context, host, name string) bool {
	ctx, cancel := context.WithTimeout(ctx, e.config.Timeout)
	defer cancel()

	certificate, err := e.fetchCertificate(ctx, host)
	if err != nil {
		log.Debugf("TLS check of %s failed: %s", host, err)
		return false
	}

	commonName := strings.TrimPrefix(certificate.Subject.CommonName, "*.")
	if !strings.EqualFold(commonName, host) {
		return false
	}

	organizations := certificate.Subject.Organization
	return len(organizations) > 0 && organizations[0] == name
}

func dialCertificate(ctx context.Context, host string) (*x509.Certificate, error) {
	dialer := &tls.Dialer{Config: &tls.Config{ServerName: host}}
	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(host, "443"))
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	certificates := conn.(*tls.Conn).ConnectionState().PeerCertificates
	if len(certificates) == 0 {
		return nil, errors.Errorf("%s served no certificate", host)
	}

	return certificates[0], nil
}
